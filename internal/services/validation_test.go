package services

import (
	"testing"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidLogin(t *testing.T) {
	tests := []struct {
		login string
		want  bool
	}{
		{"alice_01", true},
		{"A", true},
		{"___", true},
		{"", false},
		{"alice-01", false},
		{"alice 01", false},
		{"алиса", false},
		{"alice@example", false},
	}
	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidLogin(tt.login))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Abc1!z", true},
		{"every special", "Passw0rd;", true},
		{"no upper", "abc123", false},
		{"no upper with special", "abc1!z", false},
		{"no lower", "ABC1!Z", false},
		{"no digit", "Abcd!z", false},
		{"no special", "Abc12z", false},
		{"too short", "Ab1!z", false},
		{"other special only", "Abc1?z", false},
		{"cyrillic letters", "Пароль1!", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "89001234567", NormalizePhone("+79001234567"))
	assert.Equal(t, "89001234567", NormalizePhone(" +79001234567 "))
	assert.Equal(t, "89001234567", NormalizePhone("89001234567"))
	assert.Equal(t, "+19001234567", NormalizePhone("+19001234567"))
	assert.Equal(t, "9001+7", NormalizePhone("9001+7"))
}

func validCandidate() models.Candidate {
	return models.Candidate{
		FirstName:       "Alice",
		LastName:        "Smith",
		Login:           "alice_01",
		Email:           "alice@example.com",
		Phone:           "89001234567",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
	}
}

func TestValidateCandidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := validCandidate()
		require.NoError(t, validateCandidate(&c))
	})

	t.Run("contact and names optional", func(t *testing.T) {
		c := models.Candidate{
			Login:           "alice_01",
			Password:        "Passw0rd!",
			ConfirmPassword: "Passw0rd!",
			Email:           "not-an-email",
		}
		require.NoError(t, validateCandidate(&c))
	})

	tests := []struct {
		name   string
		mutate func(*models.Candidate)
		want   error
	}{
		{"bad login", func(c *models.Candidate) { c.Login = "alice-01" }, common.ErrInvalidLogin},
		{"empty login", func(c *models.Candidate) { c.Login = "" }, common.ErrInvalidLogin},
		{"weak password", func(c *models.Candidate) { c.Password = "abc123"; c.ConfirmPassword = "abc123" }, common.ErrWeakPassword},
		{"mismatch", func(c *models.Candidate) { c.ConfirmPassword = "Passw0rd." }, common.ErrPasswordMismatch},
		{"login before password", func(c *models.Candidate) { c.Login = "a b"; c.Password = "x" }, common.ErrInvalidLogin},
		{"password before mismatch", func(c *models.Candidate) { c.Password = "abc" }, common.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)
			err := validateCandidate(&c)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
