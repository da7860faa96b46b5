package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/go-playground/validator/v10"
)

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

const passwordSpecials = "!._,:;"

const minPasswordLength = 6

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return ValidLogin(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidLogin reports whether login is non-empty and uses only latin
// letters, digits and underscores.
func ValidLogin(login string) bool {
	return loginPattern.MatchString(login)
}

// ValidPassword applies the password policy: at least six characters with
// an upper-case and a lower-case latin letter, a digit and one of !._,:;
func ValidPassword(p string) bool {
	if len(p) < minPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// NormalizePhone replaces a leading "+7" with "8".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if rest, ok := strings.CutPrefix(phone, "+7"); ok {
		return "8" + rest
	}
	return phone
}

// fieldPriority is the order in which failing fields are reported.
var fieldPriority = []struct {
	field string
	err   error
}{
	{"Login", common.ErrInvalidLogin},
	{"Password", common.ErrWeakPassword},
	{"ConfirmPassword", common.ErrPasswordMismatch},
}

// validateCandidate returns the first rule c breaks, in reporting order:
// login, password policy, then confirmation.
func validateCandidate(c *models.Candidate) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	failed := make(map[string]validator.FieldError, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = fe
	}

	for _, p := range fieldPriority {
		if _, ok := failed[p.field]; ok {
			return p.err
		}
	}

	fe := verrs[0]
	return fmt.Errorf("%w: %s is %s", common.ErrValidation, strings.ToLower(fe.StructField()), describeTag(fe.Tag()))
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "required"
	default:
		return "invalid"
	}
}
