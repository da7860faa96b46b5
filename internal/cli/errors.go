package cli

import (
	"errors"

	"github.com/dmitrijs2005/docflow/internal/common"
)

// plainErrors already read well to the user and are shown as is.
var plainErrors = []error{
	common.ErrInvalidLogin,
	common.ErrWeakPassword,
	common.ErrPasswordMismatch,
	common.ErrDuplicateContact,
	common.ErrInvalidCredentials,
	common.ErrRoleInUse,
	common.ErrRoleNotFound,
	common.ErrBuiltinRole,
}

// describeError maps service errors to the text shown to the user.
func describeError(err error) string {
	for _, s := range plainErrors {
		if errors.Is(err, s) {
			return "Error: " + s.Error()
		}
	}

	switch {
	case errors.Is(err, common.ErrDelivery):
		return "Could not send the confirmation code, check the email address and try again"
	case errors.Is(err, common.ErrVerificationExhausted):
		return "Wrong confirmation code entered too many times, registration cancelled"
	case errors.Is(err, common.ErrTokenExpired):
		return "Session expired, please log in again"
	case errors.Is(err, common.ErrInvalidToken):
		return "Session is not valid, please log in again"
	case errors.Is(err, common.ErrForbidden):
		return "Access denied"
	case errors.Is(err, common.ErrorNotFound):
		return "Not found"
	case errors.Is(err, common.ErrConstraintViolation):
		return "Error: the value is already in use"
	default:
		return "Error: " + err.Error()
	}
}
