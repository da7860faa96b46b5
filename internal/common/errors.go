// Package common defines sentinel errors and small helpers shared by the
// repositories, services and the CLI. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")

	// Registration errors, in validation order.
	ErrInvalidLogin     = errors.New("login may contain only latin letters, digits and '_'")
	ErrWeakPassword     = errors.New("password must be at least 6 characters and include upper and lower case letters, a digit and one of !._,:;")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateContact = errors.New("email or phone number is already in use")

	// Confirmation errors.
	ErrDelivery              = errors.New("confirmation delivery failed")
	ErrVerificationExhausted = errors.New("confirmation attempts exhausted")
	ErrGateClosed            = errors.New("confirmation already finished")

	// Login errors.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// Session errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrForbidden    = errors.New("forbidden")

	// Administration errors.
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleInUse    = errors.New("role is assigned to users")
	ErrBuiltinRole  = errors.New("built-in roles cannot be renamed or deleted")

	// Generic input validation for the collaborators (documents, calendar).
	ErrValidation = errors.New("validation error")
)

// DeliveryError carries the transport failure behind ErrDelivery.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send confirmation to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDelivery) match any DeliveryError.
func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }
