package services

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password strength policy, mirroring the platform's defaults: a minimum
// length and a ban on entirely-numeric passwords.
const minPasswordLength = 8

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordAllNumeric = errors.New("password cannot be entirely numeric")
)

// ValidatePassword checks a candidate password against the strength policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	allNumeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		return ErrPasswordAllNumeric
	}
	return nil
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
