package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/services"
)

type AuthAPI interface {
	Register(ctx context.Context, actor *models.Session, c models.Candidate, prompter services.CodePrompter) (*models.User, error)
	Login(ctx context.Context, login, password string) (*models.Session, string, error)
	Logout(ctx context.Context, s *models.Session)
	Resolve(token string) (*models.Session, error)
}

type AdminAPI interface {
	ListUsers(ctx context.Context, s *models.Session) ([]models.UserListItem, error)
	CreateUser(ctx context.Context, s *models.Session, c models.Candidate, prompter services.CodePrompter) (*models.User, error)
	ChangeRole(ctx context.Context, s *models.Session, userID, roleID int64) (bool, error)
	DeleteUsers(ctx context.Context, s *models.Session, ids ...int64) ([]int64, error)
	ListRoles(ctx context.Context, s *models.Session) ([]models.Role, error)
	CreateRole(ctx context.Context, s *models.Session, name, rights string) (*models.Role, error)
	UpdateRole(ctx context.Context, s *models.Session, role models.Role) error
	DeleteRole(ctx context.Context, s *models.Session, id int64) error
}

type DocumentAPI interface {
	Register(ctx context.Context, s *models.Session, d services.NewDocument) (*models.Document, error)
	Search(ctx context.Context, s *models.Session, filter models.DocumentFilter) ([]models.DocumentView, error)
	Download(ctx context.Context, s *models.Session, id int64) (string, []byte, error)
	Delete(ctx context.Context, s *models.Session, id int64) error
	Statuses(ctx context.Context) ([]string, error)
}

type CalendarAPI interface {
	Create(ctx context.Context, s *models.Session, e models.CalendarEvent) (*models.CalendarEvent, error)
	ForDate(ctx context.Context, date string) ([]models.CalendarEvent, error)
}

type HistoryAPI interface {
	List(ctx context.Context, s *models.Session) ([]models.ActionView, error)
	Clear(ctx context.Context, s *models.Session) (int64, error)
}

// Services groups the collaborators the CLI drives.
type Services struct {
	Auth      AuthAPI
	Admin     AdminAPI
	Documents DocumentAPI
	Calendar  CalendarAPI
	History   HistoryAPI
}

// getSimpleText, getPassword, getMultiline and readFile are indirections used
// to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	readFile      = os.ReadFile
)

type App struct {
	svc         Services
	downloadDir string
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	token       string
}

// NewApp builds the client. Downloaded documents are saved to downloadDir.
func NewApp(svc Services, downloadDir string, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		svc:         svc,
		downloadDir: downloadDir,
		logger:      logger,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to docflow (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) isAdmin() bool {
	s, err := a.svc.Auth.Resolve(a.token)
	return err == nil && s.IsAdmin()
}

// session resolves the held token. An expired token is dropped.
func (a *App) session() (*models.Session, error) {
	if a.token == "" {
		return nil, common.ErrForbidden
	}
	s, err := a.svc.Auth.Resolve(a.token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
			a.token = ""
		}
		return nil, err
	}
	return s, nil
}

func (a *App) getStatus() string {
	s, err := a.session()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Login, s.Label)
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
