// Package config loads runtime configuration for the docflow CLI.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional .env file (-env, or ./.env when present) and DOCFLOW_*
//     environment variables.
//  4. Command-line flags.
//
// # JSON schema
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "data/docflow.db",
//	  "data_dir": "data",
//	  "smtp_host": "smtp.gmail.com",
//	  "smtp_port": 465,
//	  "smtp_username": "robot@example.com",
//	  "smtp_password": "app-password",
//	  "smtp_from": "robot@example.com",
//	  "smtp_timeout": "30s",
//	  "password_storage": "plain",
//	  "session_secret": "change-me",
//	  "session_ttl": "8h",
//	  "blob_backend": "db",
//	  "s3_access_key": "admin",
//	  "s3_secret_key": "secretpassword",
//	  "s3_bucket": "documents",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/",
//	  "log_level": "info",
//	  "bootstrap_admin": "root"
//	}
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"

	BlobDB = "db"
	BlobS3 = "s3"
)

// Config holds runtime settings for the docflow CLI.
//
// An empty DatabaseDSN with the sqlite driver means "docflow.db inside
// DataDir". An empty SMTPHost switches confirmation delivery to the log.
// SessionTTL of zero issues sessions without expiry. BootstrapAdmin names a
// login that gets the admin role at startup while no admin exists.
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	DataDir         string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPTimeout     time.Duration
	PasswordStorage string
	SessionSecret   string
	SessionTTL      time.Duration
	BlobBackend     string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	LogLevel        string
	BootstrapAdmin  string
}

// LoadDefaults populates c with development defaults.
// NOTE: SessionSecret must be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = ""
	c.DataDir = "data"
	c.SMTPHost = ""
	c.SMTPPort = 465
	c.SMTPTimeout = 30 * time.Second
	c.PasswordStorage = PasswordPlain
	c.SessionSecret = "docflow-dev-secret"
	c.SessionTTL = 0
	c.BlobBackend = BlobDB
	c.S3Bucket = "documents"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// Validate reports settings that cannot be served by any backend.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver == DriverPostgres && c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is required for %s", DriverPostgres)
	}
	switch c.PasswordStorage {
	case PasswordPlain, PasswordBcrypt:
	default:
		return fmt.Errorf("unsupported password storage %q", c.PasswordStorage)
	}
	switch c.BlobBackend {
	case BlobDB, BlobS3:
	default:
		return fmt.Errorf("unsupported blob backend %q", c.BlobBackend)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session secret must not be empty")
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return fmt.Errorf("smtp from address is required when smtp host is set")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays JSON,
// environment and flags. Parse errors panic, as in the flag package's
// PanicOnError mode.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg)
	return cfg
}
