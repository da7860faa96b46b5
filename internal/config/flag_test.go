package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-t", "postgres", "-d", "postgres://localhost/docflow", "-p", "bcrypt", "-x", "30", "-l", "debug"},
			expected: &Config{DatabaseDriver: "postgres", DatabaseDSN: "postgres://localhost/docflow", PasswordStorage: "bcrypt", SessionTTL: 30 * time.Minute, LogLevel: "debug"}},
		{name: "Test2 foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-m", "smtp.example.com"},
			expected: &Config{SMTPHost: "smtp.example.com"}},
		{name: "Test3 bootstrap admin", args: []string{"cmd", "-a", "root", "-o", "s3"},
			expected: &Config{BootstrapAdmin: "root", BlobBackend: "s3"}},
		{name: "Test4 incorrect session ttl", args: []string{"cmd", "-x", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsSubMinuteTTLWhenUnset(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{SessionTTL: 90 * time.Second}
	parseFlags(cfg)

	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
}
