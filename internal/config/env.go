package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/docflow/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "DOCFLOW_"

const defaultEnvFile = ".env"

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseEnv overlays cfg with DOCFLOW_* variables. Values come from the
// dotenv file named by -env (or ./.env when it exists), and the process
// environment overrides the file. Malformed numbers or durations panic.
func parseEnv(cfg *Config, lookup lookupFunc) {
	vars := readEnvFile(flagx.EnvFileFlag(os.Args[1:]))

	get := func(name string) (string, bool) {
		if v, ok := lookup(envPrefix + name); ok {
			return v, true
		}
		v, ok := vars[envPrefix+name]
		return v, ok
	}

	stringVars := map[string]*string{
		"DATABASE_DRIVER":  &cfg.DatabaseDriver,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"DATA_DIR":         &cfg.DataDir,
		"SMTP_HOST":        &cfg.SMTPHost,
		"SMTP_USERNAME":    &cfg.SMTPUsername,
		"SMTP_PASSWORD":    &cfg.SMTPPassword,
		"SMTP_FROM":        &cfg.SMTPFrom,
		"PASSWORD_STORAGE": &cfg.PasswordStorage,
		"SESSION_SECRET":   &cfg.SessionSecret,
		"BLOB_BACKEND":     &cfg.BlobBackend,
		"S3_ACCESS_KEY":    &cfg.S3AccessKey,
		"S3_SECRET_KEY":    &cfg.S3SecretKey,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
		"LOG_LEVEL":        &cfg.LogLevel,
		"BOOTSTRAP_ADMIN":  &cfg.BootstrapAdmin,
	}
	for name, dst := range stringVars {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("SMTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.SMTPPort = port
	}

	durations := map[string]*time.Duration{
		"SMTP_TIMEOUT": &cfg.SMTPTimeout,
		"SESSION_TTL":  &cfg.SessionTTL,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
}

// readEnvFile returns the variables of a dotenv file without touching the
// process environment. A missing default file is not an error.
func readEnvFile(path string) map[string]string {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}
		}
		panic(err)
	}
	return vars
}
