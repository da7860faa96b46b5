package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docflow/internal/flagx"
	"github.com/dmitrijs2005/docflow/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell an
// absent key from a zero value so a partial file only overrides what it names.
type JsonConfig struct {
	DatabaseDriver  *string         `json:"database_driver"`
	DatabaseDSN     *string         `json:"database_dsn"`
	DataDir         *string         `json:"data_dir"`
	SMTPHost        *string         `json:"smtp_host"`
	SMTPPort        *int            `json:"smtp_port"`
	SMTPUsername    *string         `json:"smtp_username"`
	SMTPPassword    *string         `json:"smtp_password"`
	SMTPFrom        *string         `json:"smtp_from"`
	SMTPTimeout     *timex.Duration `json:"smtp_timeout"`
	PasswordStorage *string         `json:"password_storage"`
	SessionSecret   *string         `json:"session_secret"`
	SessionTTL      *timex.Duration `json:"session_ttl"`
	BlobBackend     *string         `json:"blob_backend"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	LogLevel        *string         `json:"log_level"`
	BootstrapAdmin  *string         `json:"bootstrap_admin"`
}

// parseJson overlays cfg with the file named by -c / -config. Without the
// flag nothing happens. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.SMTPHost, jc.SMTPHost)
	if jc.SMTPPort != nil {
		cfg.SMTPPort = *jc.SMTPPort
	}
	setString(&cfg.SMTPUsername, jc.SMTPUsername)
	setString(&cfg.SMTPPassword, jc.SMTPPassword)
	setString(&cfg.SMTPFrom, jc.SMTPFrom)
	if jc.SMTPTimeout != nil {
		cfg.SMTPTimeout = jc.SMTPTimeout.Duration
	}
	setString(&cfg.PasswordStorage, jc.PasswordStorage)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	setString(&cfg.BlobBackend, jc.BlobBackend)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.BootstrapAdmin, jc.BootstrapAdmin)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
