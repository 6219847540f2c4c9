package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/credential-service/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/credential-service/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/credential-service/internal/domain"
	"github.com/marcos-nsantos/credential-service/internal/pkg/apperror"
	"github.com/marcos-nsantos/credential-service/internal/pkg/httputil"
	"github.com/marcos-nsantos/credential-service/internal/usecase/auth"
)

const (
	msgRegisterMissing = "All fields are required."
	msgSignInMissing   = "Email and password are required."
	msgUserCreated     = "User created successfully!"
	msgSignInOK        = "Sign in successful!"
)

// Outcome labels reported to the OutcomeRecorder.
const (
	OutcomeCreated            = "created"
	OutcomeMissingFields      = "missing_fields"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidField       = "invalid_field"
	OutcomeAuthenticated      = "authenticated"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

type AuthHandler struct {
	authSvc  AuthService
	recorder OutcomeRecorder
}

func NewAuthHandler(authSvc AuthService, recorder OutcomeRecorder) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, recorder: recorder}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a new account. Emails are unique regardless of case.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RegisterRequest	true	"Registration data"
//	@Success		201		{object}	response.MessageResponse
//	@Failure		400		{object}	httputil.ErrorResponse	"Missing field, invalid field or duplicate account"
//	@Failure		405		{object}	httputil.ErrorResponse
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/api/user/signup [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		h.recorder.RecordRegistration(OutcomeMissingFields)
		httputil.HandleError(c, apperror.MissingFields(msgRegisterMissing))
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), auth.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Date:        req.Date,
	})
	if err != nil {
		_ = c.Error(err)
		outcome, appErr := registrationError(err)
		h.recorder.RecordRegistration(outcome)
		httputil.HandleError(c, appErr)
		return
	}

	h.recorder.RecordRegistration(OutcomeCreated)
	httputil.Created(c, response.MessageResponse{Message: msgUserCreated})
}

// SignIn godoc
//
//	@Summary		Sign in
//	@Description	Check an email and password pair. No session or token is issued.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.SignInRequest	true	"Credentials"
//	@Success		200		{object}	response.MessageResponse
//	@Failure		400		{object}	httputil.ErrorResponse	"Missing email or password"
//	@Failure		401		{object}	httputil.ErrorResponse	"Invalid email or password"
//	@Failure		405		{object}	httputil.ErrorResponse
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/api/user/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req request.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		h.recorder.RecordAuthentication(OutcomeMissingFields)
		httputil.HandleError(c, apperror.MissingFields(msgSignInMissing))
		return
	}

	_, err := h.authSvc.Authenticate(c.Request.Context(), auth.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		outcome, appErr := authenticationError(err)
		h.recorder.RecordAuthentication(outcome)
		httputil.HandleError(c, appErr)
		return
	}

	h.recorder.RecordAuthentication(OutcomeAuthenticated)
	httputil.OK(c, response.MessageResponse{Message: msgSignInOK})
}

func registrationError(err error) (string, *apperror.AppError) {
	var cv *domain.ConstraintViolation
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return OutcomeMissingFields, apperror.MissingFields(msgRegisterMissing)
	case errors.Is(err, domain.ErrUserAlreadyExists), domain.IsUniqueViolation(err):
		return OutcomeDuplicate, apperror.DuplicateAccount()
	case errors.As(err, &cv):
		return OutcomeInvalidField, apperror.InvalidField(cv.Field)
	default:
		return OutcomeError, apperror.Internal(err)
	}
}

func authenticationError(err error) (string, *apperror.AppError) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return OutcomeMissingFields, apperror.MissingFields(msgSignInMissing)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return OutcomeInvalidCredentials, apperror.InvalidCredentials()
	default:
		return OutcomeError, apperror.Internal(err)
	}
}
