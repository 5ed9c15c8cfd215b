package common

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s'\-]+$`)
	phoneRegex = regexp.MustCompile(`^\+?\d{8,15}$`)
)

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return errors.New("name must be between 2 and 100 characters")
	}

	if !nameRegex.MatchString(name) {
		return errors.New("name can only contain letters, spaces, hyphens and apostrophes")
	}

	return nil
}

// ValidatePassword enforces the account password policy: at least 6
// characters with one uppercase letter, one lowercase letter, one digit
// and one special character.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters long")
	}

	if len(password) > 100 {
		return errors.New("password is too long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New("password must include at least one uppercase letter, one lowercase letter, one number, and one special character")
	}

	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}

// ValidatePhone accepts empty phones; the field is optional.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	if !phoneRegex.MatchString(phone) {
		return errors.New("phone number must be between 8 and 15 digits and can optionally start with +")
	}

	return nil
}
