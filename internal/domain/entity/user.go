package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/credential-service/internal/domain"
)

const (
	PasswordMinLength    = 8
	PasswordMaxBytes     = 72 // bcrypt input limit
	PhoneNumberMaxLength = 10
	dateLayout           = "2006-01-02"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func ParseGender(s string) (Gender, error) {
	g := Gender(strings.TrimSpace(s))
	if !g.Valid() {
		return "", domain.NewConstraintViolation("gender", domain.RuleEnum)
	}
	return g, nil
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Gender       Gender
	Date         time.Time
	CreatedAt    time.Time
}

// NewUser builds a user draft with trimmed fields and a normalized email.
// A zero date defaults to the creation time.
func NewUser(name, email, passwordHash, phoneNumber string, gender Gender, date time.Time) *User {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	return &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		Gender:       gender,
		Date:         date,
		CreatedAt:    now,
	}
}

// Validate checks the schema rules every stored user must satisfy.
func (u *User) Validate() error {
	switch {
	case strings.TrimSpace(u.Name) == "":
		return domain.NewConstraintViolation("name", domain.RuleRequired)
	case u.Email == "":
		return domain.NewConstraintViolation("email", domain.RuleRequired)
	case u.Email != NormalizeEmail(u.Email):
		return domain.NewConstraintViolation("email", domain.RuleFormat)
	case u.PasswordHash == "":
		return domain.NewConstraintViolation("password", domain.RuleRequired)
	case u.PhoneNumber == "":
		return domain.NewConstraintViolation("phoneNumber", domain.RuleRequired)
	case !u.Gender.Valid():
		return domain.NewConstraintViolation("gender", domain.RuleEnum)
	}
	return ValidatePhoneNumber(u.PhoneNumber)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return domain.NewConstraintViolation("password", domain.RuleMinLength)
	}
	if len(password) > PasswordMaxBytes {
		return domain.NewConstraintViolation("password", domain.RuleMaxLength)
	}
	return nil
}

func ValidatePhoneNumber(phoneNumber string) error {
	if utf8.RuneCountInString(phoneNumber) > PhoneNumberMaxLength {
		return domain.NewConstraintViolation("phoneNumber", domain.RuleMaxLength)
	}
	return nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		cv := domain.NewConstraintViolation("date", domain.RuleFormat)
		cv.Err = err
		return time.Time{}, cv
	}
	return t.UTC(), nil
}
