package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-t string   database driver (sqlite or postgres)
//	-d string   database DSN
//	-r string   data directory
//	-m string   SMTP host (empty logs codes instead of mailing them)
//	-p string   password storage (plain or bcrypt)
//	-s string   session signing secret
//	-x int      session lifetime in minutes, 0 for no expiry
//	-o string   document blob backend (db or s3)
//	-l string   log level
//	-a string   login to promote to admin when no admin exists
//
// Only these flags are parsed; the rest of os.Args is left to other loaders.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-d", "-r", "-m", "-p", "-s", "-x", "-o", "-l", "-a"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "t", cfg.DatabaseDriver, "database driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DataDir, "r", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.SMTPHost, "m", cfg.SMTPHost, "SMTP host")
	fs.StringVar(&cfg.PasswordStorage, "p", cfg.PasswordStorage, "password storage (plain|bcrypt)")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session secret")
	sessionTTL := fs.Int("x", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&cfg.BlobBackend, "o", cfg.BlobBackend, "blob backend (db|s3)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.BootstrapAdmin, "a", cfg.BootstrapAdmin, "bootstrap admin login")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			cfg.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
