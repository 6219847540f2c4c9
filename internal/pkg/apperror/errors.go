package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidField       = "INVALID_FIELD"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_ERROR"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// MissingFields is returned when a required request field is absent. The
// message differs per endpoint.
func MissingFields(message string) *AppError {
	return New(CodeMissingFields, message, http.StatusBadRequest)
}

func DuplicateAccount() *AppError {
	return New(CodeUserExists, "User already exists.", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidField, fmt.Sprintf("Invalid value for field %s.", field), http.StatusBadRequest)
}

// InvalidCredentials covers both unknown accounts and wrong passwords.
func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid email or password.", http.StatusUnauthorized)
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error.",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func MethodNotAllowed(method string) *AppError {
	return New(CodeMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", method), http.StatusMethodNotAllowed)
}

func Is(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
