package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/docflow/internal/blobstore"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
	"github.com/dmitrijs2005/docflow/internal/database"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/session"
	"github.com/stretchr/testify/require"
)

const testCode = "123456"

type fakeIssuer struct {
	code       string
	deliverErr error
	delivered  []string
}

func (f *fakeIssuer) Issue() (string, error) { return f.code, nil }

func (f *fakeIssuer) Deliver(_ context.Context, email, code string) error {
	if f.deliverErr != nil {
		return &common.DeliveryError{Recipient: email, Err: f.deliverErr}
	}
	f.delivered = append(f.delivered, email)
	return nil
}

// scriptedPrompter answers with codes in order and records attemptsLeft.
type scriptedPrompter struct {
	codes []string
	seen  []int
	err   error
}

func (p *scriptedPrompter) PromptCode(_ context.Context, attemptsLeft int) (string, error) {
	p.seen = append(p.seen, attemptsLeft)
	if p.err != nil {
		return "", p.err
	}
	if len(p.codes) == 0 {
		return "", errors.New("no more codes")
	}
	c := p.codes[0]
	p.codes = p.codes[1:]
	return c, nil
}

func correct() *scriptedPrompter { return &scriptedPrompter{codes: []string{testCode}} }

type testEnv struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	issuer   *fakeIssuer
	auth     *AuthService
	history  *HistoryService
	admin    *AdminService
	docs     *DocumentService
	calendar *CalendarService
}

func newTestEnv(t *testing.T, hasher cryptox.PasswordHasher) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDatabase(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	logger := logging.Discard()
	issuer := &fakeIssuer{code: testCode}
	history := NewHistoryService(db, rm, logger)
	auth := NewAuthService(db, rm, hasher, issuer, session.NewManager([]byte("test-secret"), 0), history, logger)

	return &testEnv{
		db:       db,
		rm:       rm,
		issuer:   issuer,
		auth:     auth,
		history:  history,
		admin:    NewAdminService(db, rm, auth, history, logger),
		docs:     NewDocumentService(db, rm, blobstore.NewDBStore(db, rm), history, logger),
		calendar: NewCalendarService(db, rm, history, logger),
	}
}

func (e *testEnv) countUsers(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

// register creates a confirmed user with the default role.
func (e *testEnv) register(t *testing.T, c models.Candidate) *models.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), nil, c, correct())
	require.NoError(t, err)
	return u
}

// loginAdmin registers a user, gives them the admin role and logs in.
func (e *testEnv) loginAdmin(t *testing.T) *models.Session {
	t.Helper()
	ctx := context.Background()
	c := models.Candidate{
		FirstName: "Root", LastName: "Admin", Login: "root", Email: "root@example.com",
		Phone: "89000000000", Password: "Adm1n!pass", ConfirmPassword: "Adm1n!pass",
	}
	e.register(t, c)
	promoted, err := e.admin.Bootstrap(ctx, "root")
	require.NoError(t, err)
	require.True(t, promoted)

	s, _, err := e.auth.Login(ctx, "root", "Adm1n!pass")
	require.NoError(t, err)
	require.True(t, s.IsAdmin())
	return s
}

func (e *testEnv) loginUser(t *testing.T) *models.Session {
	t.Helper()
	e.register(t, validCandidate())
	s, _, err := e.auth.Login(context.Background(), "alice_01", "Passw0rd!")
	require.NoError(t, err)
	return s
}
