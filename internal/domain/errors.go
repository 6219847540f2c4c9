package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrConnectionClosed   = errors.New("connection manager closed")
)

type ConstraintRule string

const (
	RuleRequired  ConstraintRule = "required"
	RuleUnique    ConstraintRule = "unique"
	RuleMinLength ConstraintRule = "minlength"
	RuleMaxLength ConstraintRule = "maxlength"
	RuleEnum      ConstraintRule = "enum"
	RuleFormat    ConstraintRule = "format"
	RuleCheck     ConstraintRule = "check"
)

// ConstraintViolation reports a write rejected because a field broke one of
// the user schema rules. Field uses the public request field name.
type ConstraintViolation struct {
	Field string
	Rule  ConstraintRule
	Err   error
}

func NewConstraintViolation(field string, rule ConstraintRule) *ConstraintViolation {
	return &ConstraintViolation{Field: field, Rule: rule}
}

func (e *ConstraintViolation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("constraint violation on %s (%s): %v", e.Field, e.Rule, e.Err)
	}
	return fmt.Sprintf("constraint violation on %s (%s)", e.Field, e.Rule)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether err carries a uniqueness constraint violation.
func IsUniqueViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv) && cv.Rule == RuleUnique
}
