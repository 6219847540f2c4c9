package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/credential-service/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/credential-service/internal/domain"
	"github.com/marcos-nsantos/credential-service/internal/domain/entity"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
)

type staticConnector struct {
	db  database.DBTX
	err error
}

func (c staticConnector) DB(context.Context) (database.DBTX, error) {
	return c.db, c.err
}

func newMockRepo(t *testing.T) (*postgres.UserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return postgres.NewUserRepo(staticConnector{db: mock}), mock
}

func newTestUser() *entity.User {
	return entity.NewUser("Ada Lovelace", "Ada@Example.com", "$2a$04$hash", "5551234567",
		entity.GenderFemale, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
}

func TestUserRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts normalized user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := newTestUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, "Ada Lovelace", "ada@example.com", "$2a$04$hash", "5551234567",
				"Female", user.Date, user.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, user)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid draft before touching the store", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := newTestUser()
		user.Gender = "Unknown"

		err := repo.Create(ctx, user)

		var cv *domain.ConstraintViolation
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, "gender", cv.Field)
		assert.Equal(t, domain.RuleEnum, cv.Rule)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

		err := repo.Create(ctx, newTestUser())

		assert.True(t, domain.IsUniqueViolation(err))
		var cv *domain.ConstraintViolation
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, "email", cv.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps check violation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "users_phone_number_check"})

		err := repo.Create(ctx, newTestUser())

		var cv *domain.ConstraintViolation
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, "phoneNumber", cv.Field)
		assert.Equal(t, domain.RuleCheck, cv.Rule)
		assert.False(t, domain.IsUniqueViolation(err))
	})

	t.Run("maps not null violation", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "password_hash"})

		err := repo.Create(ctx, newTestUser())

		var cv *domain.ConstraintViolation
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, "password", cv.Field)
		assert.Equal(t, domain.RuleRequired, cv.Rule)
	})

	t.Run("wraps other store errors", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		storeErr := errors.New("connection reset")

		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(storeErr)

		err := repo.Create(ctx, newTestUser())

		assert.ErrorIs(t, err, storeErr)
		var cv *domain.ConstraintViolation
		assert.False(t, errors.As(err, &cv))
	})

	t.Run("propagates connection failure", func(t *testing.T) {
		connErr := errors.Join(domain.ErrStoreUnavailable, errors.New("dial tcp: refused"))
		repo := postgres.NewUserRepo(staticConnector{err: connErr})

		err := repo.Create(ctx, newTestUser())

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestUserRepo_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user by normalized email", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()
		date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		createdAt := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "name", "email", "password_hash", "phone_number", "gender", "date", "created_at",
			}).AddRow(id, "Ada Lovelace", "ada@example.com", "$2a$04$hash", "5551234567", "Female", date, createdAt))

		user, err := repo.GetByEmail(ctx, "  ADA@example.com ")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, entity.GenderFemale, user.Gender)
		assert.Equal(t, date, user.Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found error", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("missing@example.com").
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "name", "email", "password_hash", "phone_number", "gender", "date", "created_at",
			}))

		user, err := repo.GetByEmail(ctx, "missing@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepo_ExistsByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		exists bool
	}{
		{"email taken", true},
		{"email free", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery("SELECT EXISTS").
				WithArgs("ada@example.com").
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			exists, err := repo.ExistsByEmail(ctx, "Ada@Example.com")

			require.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("wraps query errors", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("ada@example.com").
			WillReturnError(errors.New("timeout"))

		_, err := repo.ExistsByEmail(ctx, "ada@example.com")

		assert.ErrorContains(t, err, "checking email existence")
	})
}
