package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/marcos-nsantos/credential-service/internal/domain"
	"github.com/marcos-nsantos/credential-service/internal/domain/entity"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
)

// Connector hands out the shared store handle, connecting on first use.
type Connector interface {
	DB(ctx context.Context) (database.DBTX, error)
}

type UserRepo struct {
	conn Connector
}

func NewUserRepo(conn Connector) *UserRepo {
	return &UserRepo{conn: conn}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, phone_number, gender, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.PhoneNumber,
		string(user.Gender), user.Date, user.CreatedAt,
	)
	if err != nil {
		if cv := constraintViolation(err); cv != nil {
			return cv
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, email, password_hash, phone_number, gender, date, created_at
		FROM users
		WHERE email = $1
	`
	var (
		user   entity.User
		gender string
	)
	err = db.QueryRow(ctx, query, entity.NormalizeEmail(email)).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.PhoneNumber,
		&gender, &user.Date, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	user.Gender = entity.Gender(gender)
	return &user, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err = db.QueryRow(ctx, query, entity.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

var constraintFields = map[string]string{
	"users_email_key":          "email",
	"users_name_check":         "name",
	"users_email_check":        "email",
	"users_phone_number_check": "phoneNumber",
	"users_gender_check":       "gender",
}

var columnFields = map[string]string{
	"name":          "name",
	"email":         "email",
	"password_hash": "password",
	"phone_number":  "phoneNumber",
	"gender":        "gender",
	"date":          "date",
}

// constraintViolation translates schema rejections into domain errors.
// It returns nil for anything that is not a constraint failure.
func constraintViolation(err error) *domain.ConstraintViolation {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	var cv *domain.ConstraintViolation
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		field, ok := constraintFields[pgErr.ConstraintName]
		if !ok {
			field = "email"
		}
		cv = domain.NewConstraintViolation(field, domain.RuleUnique)
	case pgerrcode.CheckViolation:
		field, ok := constraintFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		cv = domain.NewConstraintViolation(field, domain.RuleCheck)
	case pgerrcode.NotNullViolation:
		field, ok := columnFields[pgErr.ColumnName]
		if !ok {
			field = pgErr.ColumnName
		}
		cv = domain.NewConstraintViolation(field, domain.RuleRequired)
	case pgerrcode.StringDataRightTruncationDataException:
		field, ok := columnFields[pgErr.ColumnName]
		if !ok {
			field = pgErr.ColumnName
		}
		cv = domain.NewConstraintViolation(field, domain.RuleMaxLength)
	default:
		return nil
	}
	cv.Err = err
	return cv
}
