package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/models"
)

// codePrompter reads confirmation codes from the terminal.
type codePrompter struct {
	a *App
}

func (p codePrompter) PromptCode(_ context.Context, attemptsLeft int) (string, error) {
	return p.a.ask(fmt.Sprintf("Enter the confirmation code sent to your email (%d attempts left)", attemptsLeft))
}

// readCandidate prompts for the registration form.
func (a *App) readCandidate() (models.Candidate, error) {
	var c models.Candidate

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Last name", &c.LastName},
		{"First name", &c.FirstName},
		{"Middle name (optional)", &c.MiddleName},
		{"Login (latin letters, digits, _)", &c.Login},
		{"Email", &c.Email},
		{"Phone", &c.Phone},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return c, err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return c, err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return c, err
	}
	defer common.WipeByteArray(confirmation)

	c.Password = string(password)
	c.ConfirmPassword = string(confirmation)
	return c, nil
}

// Register runs self-registration: the form, then the emailed code.
func (a *App) Register(ctx context.Context) error {
	c, err := a.readCandidate()
	if err != nil {
		return err
	}

	u, err := a.svc.Auth.Register(ctx, nil, c, codePrompter{a: a})
	if err != nil {
		return err
	}

	a.printf("User %s registered, you can log in now\n", u.Login)
	return nil
}

// Login prompts for credentials and keeps the session token on success.
func (a *App) Login(ctx context.Context) error {
	login, err := a.ask("Login")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, token, err := a.svc.Auth.Login(ctx, login, string(password))
	if err != nil {
		return err
	}

	a.token = token
	a.printf("Welcome, %s %s (%s)\n", s.FirstName, s.LastName, s.Label)
	return nil
}

// Logout forgets the session token.
func (a *App) Logout(ctx context.Context) error {
	if s, err := a.session(); err == nil {
		a.svc.Auth.Logout(ctx, s)
	}
	a.token = ""
	a.println("Logged out")
	return nil
}

func (a *App) Whoami(_ context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	a.printf("%s %s %s (%s)\n", s.LastName, s.FirstName, s.MiddleName, s.Login)
	a.printf("Role: %s [%s]\n", s.RoleName, s.Label)
	if !s.ExpiresAt.IsZero() {
		a.printf("Session expires at %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// askID prompts for a numeric id.
func (a *App) askID(prompt string) (int64, error) {
	v, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", common.ErrValidation, v)
	}
	return id, nil
}
