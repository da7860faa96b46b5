package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docflow/internal/blobstore"
	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
	"github.com/dmitrijs2005/docflow/internal/database"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/services"
	"github.com/dmitrijs2005/docflow/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCode = "123456"

type stubIssuer struct{}

func (stubIssuer) Issue() (string, error) { return testCode, nil }
func (stubIssuer) Deliver(context.Context, string, string) error { return nil }

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		require.NotEmpty(t, pws, "unexpected password prompt")
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

type testClient struct {
	db          *sql.DB
	svc         Services
	admin       *services.AdminService
	downloadDir string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDatabase(ctx, dbx.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	logger := logging.Discard()
	history := services.NewHistoryService(db, rm, logger)
	auth := services.NewAuthService(db, rm, cryptox.PlainHasher{}, stubIssuer{},
		session.NewManager([]byte("test-secret"), 0), history, logger)
	admin := services.NewAdminService(db, rm, auth, history, logger)

	return &testClient{
		db: db,
		svc: Services{
			Auth:      auth,
			Admin:     admin,
			Documents: services.NewDocumentService(db, rm, blobstore.NewDBStore(db, rm), history, logger),
			Calendar:  services.NewCalendarService(db, rm, history, logger),
			History:   history,
		},
		admin:       admin,
		downloadDir: t.TempDir(),
	}
}

// run feeds input lines to a fresh App and returns everything printed.
func (c *testClient) run(t *testing.T, lines ...string) string {
	t.Helper()
	repl := captureOutput(t)
	var out bytes.Buffer

	app := NewApp(c.svc, c.downloadDir, logging.Discard(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	app.Run(context.Background())

	return out.String() + repl.String()
}

func (c *testClient) countUsers(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, c.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

var registerAlice = []string{"register", "Smith", "Alice", "", "alice_01", "alice@example.com", "+79001234567"}

func TestApp_RegisterLoginAndDocuments(t *testing.T) {
	c := newTestClient(t)
	stubPasswords(t, "Passw0rd!", "Passw0rd!", "Passw0rd!")

	src := filepath.Join(t.TempDir(), "scan.TXT")
	require.NoError(t, os.WriteFile(src, []byte("contract body"), 0o600))

	lines := append([]string{}, registerAlice...)
	lines = append(lines,
		testCode,
		"login", "alice_01",
		"whoami",
		"adddoc", "Contract", "agreement", "", src,
		"docs", "ontr", "", "", "y",
		"getdoc", "1",
		"deldoc", "1", "y",
		"getdoc", "1",
		"addevent", "Planning", "Agenda", "", "2024-03-01", "10:00", "11:00", "",
		"events", "2024-03-01",
		"logout",
		"exit",
	)
	out := c.run(t, lines...)

	assert.Contains(t, out, "User alice_01 registered")
	assert.Contains(t, out, "Welcome, Alice Smith (user)")
	assert.Contains(t, out, "Role: user [user]")
	assert.Contains(t, out, "Document 1 registered")
	assert.Contains(t, out, "Contract.txt")
	assert.Contains(t, out, "Document deleted")
	assert.Contains(t, out, "Not found")
	assert.Contains(t, out, "Event 1 added on 2024-03-01")
	assert.Contains(t, out, "10:00-11:00")
	assert.Contains(t, out, "Logged out")

	data, err := os.ReadFile(filepath.Join(c.downloadDir, "Contract.txt"))
	require.NoError(t, err)
	assert.Equal(t, "contract body", string(data))

	_, _, err = c.svc.Auth.Login(context.Background(), "alice_01", "Passw0rd!")
	require.NoError(t, err)
}

func TestApp_RegistrationRejected(t *testing.T) {
	c := newTestClient(t)
	stubPasswords(t, "Passw0rd!", "Passw0rd!")

	lines := append([]string{}, registerAlice...)
	lines = append(lines, "000000", "111111", "exit")
	out := c.run(t, lines...)

	assert.Contains(t, out, "(2 attempts left)")
	assert.Contains(t, out, "(1 attempts left)")
	assert.Contains(t, out, "registration cancelled")
	assert.Equal(t, 0, c.countUsers(t))
}

func TestApp_RegistrationValidation(t *testing.T) {
	c := newTestClient(t)
	stubPasswords(t, "abc123", "abc123")

	lines := append([]string{}, registerAlice...)
	lines = append(lines, "exit")
	out := c.run(t, lines...)

	assert.Contains(t, out, "Error: "+common.ErrWeakPassword.Error())
	assert.NotContains(t, out, "attempts left")
	assert.Equal(t, 0, c.countUsers(t))
}

func TestApp_WrongPassword(t *testing.T) {
	c := newTestClient(t)
	stubPasswords(t, "Passw0rd!", "Passw0rd!", "Wrong0rd!")

	lines := append([]string{}, registerAlice...)
	lines = append(lines, testCode, "login", "alice_01", "docs", "exit")
	out := c.run(t, lines...)

	assert.Contains(t, out, "Error: invalid login or password")
	assert.Contains(t, out, "Please log in first")
}

func TestApp_Administration(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	stubPasswords(t, "Adm1n!pass", "Adm1n!pass")
	c.run(t, "register", "Admin", "Root", "", "root", "root@example.com", "89000000000", testCode, "exit")
	promoted, err := c.admin.Bootstrap(ctx, "root")
	require.NoError(t, err)
	require.True(t, promoted)

	stubPasswords(t, "Adm1n!pass")
	out := c.run(t,
		"login", "root",
		"help",
		"users",
		"addrole", "clerk", "documents only",
		"roles",
		"editrole", "3", "", "documents and calendar",
		"setrole", "1", "1",
		"delrole", "1",
		"delrole", "3",
		"deluser", "42", "y",
		"history",
		"clearhistory", "y",
		"exit",
	)

	assert.Contains(t, out, "Welcome, Root Admin (admin)")
	assert.Contains(t, out, helpAdmin)
	assert.Contains(t, out, "Admin R.")
	assert.Contains(t, out, "Role clerk created with id 3")
	assert.Contains(t, out, "Role updated")
	assert.Contains(t, out, "User already has this role")
	assert.Contains(t, out, "Error: "+common.ErrRoleInUse.Error())
	assert.Contains(t, out, "Role deleted")
	assert.Contains(t, out, "Not found: 42")
	assert.Contains(t, out, "Removed")

	list, err := c.svc.History.List(ctx, &models.Session{UserID: 1, Label: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ActionClear, list[0].Type)
}

type expiringAuth struct {
	AuthAPI
}

func (expiringAuth) Resolve(string) (*models.Session, error) { return nil, common.ErrTokenExpired }

func TestApp_ExpiredSessionIsDropped(t *testing.T) {
	app := NewApp(Services{Auth: expiringAuth{}}, t.TempDir(), logging.Discard(), strings.NewReader(""), io.Discard)
	app.token = "stale"

	err := app.Docs(context.Background())
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, "", app.getStatus())
}
