package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/verification"
)

// CodeIssuer generates confirmation codes and sends them to an address.
type CodeIssuer interface {
	Issue() (string, error)
	Deliver(ctx context.Context, email, code string) error
}

// CodePrompter asks the person registering for the code they received.
// attemptsLeft is how many wrong codes the gate still tolerates.
type CodePrompter interface {
	PromptCode(ctx context.Context, attemptsLeft int) (string, error)
}

// TokenManager signs sessions into tokens and back.
type TokenManager interface {
	Issue(s *models.Session) (string, error)
	Parse(token string) (*models.Session, error)
}

// AuthService implements registration with email confirmation, login and
// session resolution.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	issuer      CodeIssuer
	tokens      TokenManager
	history     ActionLogger
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, hasher cryptox.PasswordHasher,
	issuer CodeIssuer, tokens TokenManager, history ActionLogger, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: rm,
		hasher:      hasher,
		issuer:      issuer,
		tokens:      tokens,
		history:     history,
		logger:      logger,
	}
}

// Register validates c, confirms its email through prompter and inserts the
// user once the code is accepted. Nothing is written unless the code is
// accepted. actor may be nil for self-registration; an explicit role in c
// requires an admin actor.
func (a *AuthService) Register(ctx context.Context, actor *models.Session, c models.Candidate, prompter CodePrompter) (*models.User, error) {
	if c.RoleID != 0 && !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}

	c.Phone = NormalizePhone(c.Phone)
	if err := validateCandidate(&c); err != nil {
		return nil, err
	}

	role, err := a.resolveRole(ctx, c.RoleID)
	if err != nil {
		return nil, err
	}

	users := a.repomanager.Users(a.db)
	_, err = users.FindByContact(ctx, c.Email, c.Phone)
	if err == nil {
		return nil, common.ErrDuplicateContact
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if err := a.confirm(ctx, c.Email, prompter); err != nil {
		return nil, err
	}

	stored, err := a.hasher.Hash(c.Password)
	if err != nil {
		return nil, err
	}

	user, err := users.Create(ctx, &models.User{
		Login:      c.Login,
		Password:   stored,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		MiddleName: c.MiddleName,
		RoleID:     role.ID,
		Phone:      c.Phone,
		Email:      c.Email,
	})
	if err != nil {
		if errors.Is(err, common.ErrConstraintViolation) {
			return nil, common.ErrDuplicateContact
		}
		return nil, err
	}

	a.logger.Info(ctx, "user registered", "login", user.Login, "user_id", user.ID, "role", role.Name)

	by := actor
	if by == nil {
		by = &models.Session{UserID: user.ID, Login: user.Login}
	}
	record(ctx, a.history, a.logger, by, models.ActionRegister, user.Login, fmt.Sprintf("registered user %s with role %s", user.Login, role.Name), nil)

	return user, nil
}

func (a *AuthService) resolveRole(ctx context.Context, roleID int64) (*models.Role, error) {
	roles := a.repomanager.Roles(a.db)
	var (
		role *models.Role
		err  error
	)
	if roleID == 0 {
		role, err = roles.GetByName(ctx, models.RoleUser)
	} else {
		role, err = roles.GetByID(ctx, roleID)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrRoleNotFound
	}
	return role, err
}

// confirm issues one code, delivers it and runs the gate until it is
// accepted or rejected.
func (a *AuthService) confirm(ctx context.Context, email string, prompter CodePrompter) error {
	code, err := a.issuer.Issue()
	if err != nil {
		return err
	}
	if err := a.issuer.Deliver(ctx, email, code); err != nil {
		return err
	}

	gate := verification.NewGate(code)
	for gate.State() == verification.StatePending {
		entered, err := prompter.PromptCode(ctx, gate.AttemptsLeft())
		if err != nil {
			return err
		}
		if _, err := gate.Submit(entered); err != nil {
			a.logger.Warn(ctx, "confirmation rejected", "email", email)
			return err
		}
	}
	return nil
}

// Login checks the credentials and returns the session with its signed
// token. Any mismatch is reported as common.ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, login, password string) (*models.Session, string, error) {
	user, err := a.authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			a.logger.Info(ctx, "login failed", "login", login)
		}
		return nil, "", err
	}

	s := &models.Session{
		UserID:     user.ID,
		Login:      user.Login,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		MiddleName: user.MiddleName,
		RoleID:     user.RoleID,
		Label:      models.RoleUser,
	}

	role, err := a.repomanager.Roles(a.db).GetByID(ctx, user.RoleID)
	switch {
	case err == nil:
		s.RoleName = role.Name
		if role.Name == models.RoleAdmin {
			s.Label = models.RoleAdmin
		}
	case errors.Is(err, common.ErrorNotFound):
		a.logger.Warn(ctx, "user has no role", "user_id", user.ID, "role_id", user.RoleID)
	default:
		return nil, "", err
	}

	token, err := a.tokens.Issue(s)
	if err != nil {
		return nil, "", err
	}

	a.logger.Info(ctx, "user logged in", "login", s.Login, "user_id", s.UserID, "role", s.Label)
	record(ctx, a.history, a.logger, s, models.ActionLogin, s.Login, "logged in", nil)

	return s, token, nil
}

func (a *AuthService) authenticate(ctx context.Context, login, password string) (*models.User, error) {
	users := a.repomanager.Users(a.db)

	if a.hasher.StoresPlaintext() {
		user, err := users.FindByCredentials(ctx, login, password)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return user, err
	}

	user, err := users.FindByLogin(ctx, login)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := a.hasher.Compare(user.Password, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// Resolve turns a token back into its session.
func (a *AuthService) Resolve(token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrForbidden
	}
	return a.tokens.Parse(token)
}

func (a *AuthService) Logout(ctx context.Context, s *models.Session) {
	if s == nil {
		return
	}
	a.logger.Info(ctx, "user logged out", "login", s.Login, "user_id", s.UserID)
}
