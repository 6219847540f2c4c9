package repository

import (
	"context"

	"github.com/marcos-nsantos/credential-service/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository persists credential records. Emails are compared in their
// normalized form.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
