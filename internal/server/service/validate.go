package service

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	emailMaxLen    = 100
	passwordMinLen = 8
	passwordMaxLen = 72 // bcrypt input limit
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// normalizeUsername case-folds and trims a username for storage and lookup.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// normalizeEmail case-folds and trims an email for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	switch {
	case len(username) < usernameMinLen:
		return invalid("username", "must be at least 3 characters")
	case len(username) > usernameMaxLen:
		return invalid("username", "must be at most 50 characters")
	case !usernamePattern.MatchString(username):
		return invalid("username", "may only contain letters, digits, '-' and '_'")
	}
	return nil
}

func validateEmail(email string) error {
	switch {
	case email == "":
		return invalid("email", "is required")
	case len(email) > emailMaxLen:
		return invalid("email", "must be at most 100 characters")
	case !emailPattern.MatchString(email):
		return invalid("email", "is not a valid address")
	}
	return nil
}

// validatePassword enforces the strength rules: minimum length and at
// least one letter and one digit.
func validatePassword(password string) error {
	switch {
	case len(password) < passwordMinLen:
		return invalid("password", "must be at least 8 characters")
	case len(password) > passwordMaxLen:
		return invalid("password", "must be at most 72 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return invalid("password", "must contain at least one letter and one digit")
	}
	return nil
}
