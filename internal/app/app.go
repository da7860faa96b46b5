// Package app wires configuration, storage, mail delivery and the services
// into the interactive client.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/docflow/internal/blobstore"
	"github.com/dmitrijs2005/docflow/internal/cli"
	"github.com/dmitrijs2005/docflow/internal/config"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
	"github.com/dmitrijs2005/docflow/internal/database"
	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/filex"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/mailer"
	"github.com/dmitrijs2005/docflow/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docflow/internal/services"
	"github.com/dmitrijs2005/docflow/internal/session"
	"github.com/dmitrijs2005/docflow/internal/verification"
)

const (
	sqliteFileName  = "docflow.db"
	downloadsSubdir = "downloads"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	admin  *services.AdminService
	client *cli.App
}

// NewApp opens the store, runs migrations and builds the services. The
// client reads commands from in and writes to out; logs go to stderr.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	dataDir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}
	downloadDir, err := filex.EnsureSubdDir(filepath.Join(dataDir, downloadsSubdir))
	if err != nil {
		return nil, fmt.Errorf("download dir init error: %w", err)
	}

	dialect := dbx.Dialect(c.DatabaseDriver)
	database.SetLogger(ctx, logger)
	db, err := database.InitDatabase(ctx, dialect, resolveDSN(c, dataDir))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db, dialect, downloadDir, in, out)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect dbx.Dialect,
	downloadDir string, in io.Reader, out io.Writer) (*App, error) {
	rm := repomanager.NewSQLRepositoryManager(dialect)

	hasher, err := cryptox.NewPasswordHasher(c.PasswordStorage)
	if err != nil {
		return nil, err
	}

	blobs, err := newBlobStore(ctx, c, db, rm)
	if err != nil {
		return nil, err
	}

	issuer := verification.NewIssuer(newSender(c, logger), logger)
	tokens := session.NewManager([]byte(c.SessionSecret), c.SessionTTL)

	history := services.NewHistoryService(db, rm, logger)
	auth := services.NewAuthService(db, rm, hasher, issuer, tokens, history, logger)
	admin := services.NewAdminService(db, rm, auth, history, logger)

	client := cli.NewApp(cli.Services{
		Auth:      auth,
		Admin:     admin,
		Documents: services.NewDocumentService(db, rm, blobs, history, logger),
		Calendar:  services.NewCalendarService(db, rm, history, logger),
		History:   history,
	}, downloadDir, logger, in, out)

	return &App{config: c, logger: logger, db: db, admin: admin, client: client}, nil
}

// resolveDSN puts the SQLite file into the data directory unless a DSN is
// configured.
func resolveDSN(c *config.Config, dataDir string) string {
	if c.DatabaseDSN != "" || c.DatabaseDriver != config.DriverSQLite {
		return c.DatabaseDSN
	}
	return filepath.Join(dataDir, sqliteFileName)
}

// newSender mails codes over SMTP, or logs them when no host is configured.
func newSender(c *config.Config, logger logging.Logger) mailer.Sender {
	if c.SMTPHost == "" {
		logger.Warn(context.Background(), "smtp host is not set, confirmation codes will be logged")
		return mailer.NewLogSender(logger)
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
		Timeout:  c.SMTPTimeout,
	})
}

func newBlobStore(ctx context.Context, c *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (blobstore.Store, error) {
	if c.BlobBackend == config.BlobS3 {
		store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return blobstore.NewDBStore(db, rm), nil
}

// Run promotes the bootstrap admin if needed and blocks in the REPL.
// SIGINT and SIGTERM cancel the command in progress.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver, "blob_backend", app.config.BlobBackend)

	if _, err := app.admin.Bootstrap(ctx, app.config.BootstrapAdmin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	app.client.Run(ctx)
	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}
