// Package validation contains input validation rules shared by handlers.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return errors.New("email too long")
	}
	if !emailRe.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidateNickname enforces the nickname rules: 1-20 characters, no spaces.
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return errors.New("nickname is required")
	}
	if len(nickname) > 20 {
		return errors.New("nickname too long (max 20 characters)")
	}
	if strings.ContainsFunc(nickname, unicode.IsSpace) {
		return errors.New("nickname must not contain spaces")
	}
	return nil
}

// ValidatePassword enforces minimum password strength: 8-20 characters with
// at least one upper, one lower, one digit and one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return errors.New("password must be 8-20 characters")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must include upper, lower, digit and special characters")
	}
	return nil
}
