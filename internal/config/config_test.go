package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.DatabaseDriver)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, 465, c.SMTPPort)
	assert.Equal(t, 30*time.Second, c.SMTPTimeout)
	assert.Equal(t, PasswordPlain, c.PasswordStorage)
	assert.Equal(t, BlobDB, c.BlobBackend)
	assert.Zero(t, c.SessionTTL)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"docflow"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 465, cfg.SMTPPort)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DatabaseDriver = DriverPostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.DatabaseDriver = DriverPostgres
			c.DatabaseDSN = "postgres://u:p@localhost/docflow"
		}},
		{name: "unknown password storage", mutate: func(c *Config) { c.PasswordStorage = "md5" }, wantErr: true},
		{name: "bcrypt storage", mutate: func(c *Config) { c.PasswordStorage = PasswordBcrypt }},
		{name: "unknown blob backend", mutate: func(c *Config) { c.BlobBackend = "ftp" }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.SessionSecret = "" }, wantErr: true},
		{name: "smtp host without from", mutate: func(c *Config) { c.SMTPHost = "smtp.example.com" }, wantErr: true},
		{name: "smtp host with from", mutate: func(c *Config) {
			c.SMTPHost = "smtp.example.com"
			c.SMTPFrom = "robot@example.com"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}
