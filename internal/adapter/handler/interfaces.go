package handler

import (
	"context"

	"github.com/marcos-nsantos/credential-service/internal/domain/entity"
	"github.com/marcos-nsantos/credential-service/internal/usecase/auth"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*entity.User, error)
	Authenticate(ctx context.Context, input auth.AuthenticateInput) (*entity.User, error)
}

// OutcomeRecorder counts registration and sign-in results.
type OutcomeRecorder interface {
	RecordRegistration(outcome string)
	RecordAuthentication(outcome string)
}
