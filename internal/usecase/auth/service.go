package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/marcos-nsantos/credential-service/internal/adapter/repository"
	"github.com/marcos-nsantos/credential-service/internal/domain"
	"github.com/marcos-nsantos/credential-service/internal/domain/entity"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/auth"
)

//go:generate mockgen -source=service.go -destination=../../mocks/usecase_mocks.go -package=mocks

// StoreConnector makes sure the backing store is reachable before a request
// is served.
type StoreConnector interface {
	EnsureConnected(ctx context.Context) error
}

type Service struct {
	store          StoreConnector
	userRepo       repository.UserRepository
	passwordHasher *auth.PasswordHasher

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewService(
	store StoreConnector,
	userRepo repository.UserRepository,
	passwordHasher *auth.PasswordHasher,
) *Service {
	return &Service{
		store:          store,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
	}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Gender      string
	Date        string
}

func (in RegisterInput) missingFields() bool {
	return strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" ||
		strings.TrimSpace(in.PhoneNumber) == "" ||
		strings.TrimSpace(in.Gender) == "" ||
		strings.TrimSpace(in.Date) == ""
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if err := s.store.EnsureConnected(ctx); err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	if input.missingFields() {
		return nil, domain.ErrMissingFields
	}

	email := entity.NormalizeEmail(input.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	if err := entity.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	gender, err := entity.ParseGender(input.Gender)
	if err != nil {
		return nil, err
	}
	date, err := entity.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	phoneNumber := strings.TrimSpace(input.PhoneNumber)
	if err := entity.ValidatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := entity.NewUser(input.Name, email, hash, phoneNumber, gender, date)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if domain.IsUniqueViolation(err) {
			return nil, domain.ErrUserAlreadyExists
		}
		var cv *domain.ConstraintViolation
		if errors.As(err, &cv) {
			return nil, cv
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate checks the credentials without issuing any session or token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, input AuthenticateInput) (*entity.User, error) {
	if err := s.store.EnsureConnected(ctx); err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// keep response time close to the known-email path
			_, _ = s.passwordHasher.Verify(input.Password, s.fallbackHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	ok, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) fallbackHash() string {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = s.passwordHasher.Hash("credential-service-placeholder")
	})
	return s.dummyHash
}
