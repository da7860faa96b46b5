// Package cryptox holds the password storage schemes and small
// constant-time helpers used by authentication.
package cryptox

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password mismatch")

// PasswordHasher turns a password into its stored form and checks a
// candidate against a stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
	// StoresPlaintext reports whether Hash is the identity, in which case a
	// store may match login and password in one predicate.
	StoresPlaintext() bool
}

// NewPasswordHasher returns the hasher for a storage mode, "plain" or "bcrypt".
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password storage %q", mode)
	}
}

// PlainHasher stores passwords as typed.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) error {
	if !ConstantTimeEqual(stored, password) {
		return ErrMismatch
	}
	return nil
}

func (PlainHasher) StoresPlaintext() bool { return true }

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Compare(stored, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

func (BcryptHasher) StoresPlaintext() bool { return false }

// ConstantTimeEqual compares two strings without leaking where they differ.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
