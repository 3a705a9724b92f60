package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrUsernameTaken = errors.New("username_taken")
	ErrEmailTaken    = errors.New("email_taken")

	// ErrInvalidCaptcha covers absent, already-consumed and mismatched
	// challenges uniformly; only expiry is reported separately.
	ErrInvalidCaptcha = errors.New("invalid_captcha")
	ErrCaptchaExpired = errors.New("captcha_expired")

	ErrSamePassword = errors.New("new password matches current password")
	ErrSelfReset    = errors.New("cannot reset own password through the admin path")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed or out-of-range input for one field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
