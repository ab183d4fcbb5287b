package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for a single updater run.
type Config struct {
	// InstanceID is the Amazon Connect instance ID or ARN being targeted.
	InstanceID string
	// CSVFile is a local path or s3:// URI of the input file.
	CSVFile string
	// CallTimeout bounds each SearchUsers / UpdateUserSecurityProfiles call.
	CallTimeout time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogDir is where the per-run log file is written.
	LogDir string
	// MetricsAddr, when non-empty, enables the prometheus listener (e.g. ":9090").
	MetricsAddr string
}

// Load reads configuration from environment variables and an optional config file.
// CONNECTUP_INSTANCE_ID, CONNECTUP_CSV_FILE etc. override file values.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONNECTUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("instance-id", "")
	v.SetDefault("csv-file", "")
	v.SetDefault("call-timeout", 30*time.Second)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-dir", ".")
	v.SetDefault("metrics-addr", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	cfg := Config{
		InstanceID:  v.GetString("instance-id"),
		CSVFile:     v.GetString("csv-file"),
		CallTimeout: v.GetDuration("call-timeout"),
		LogLevel:    v.GetString("log-level"),
		LogDir:      v.GetString("log-dir"),
		MetricsAddr: v.GetString("metrics-addr"),
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return cfg, nil
}

// Validate checks the fields that every run requires.
func (c Config) Validate() error {
	if c.InstanceID == "" {
		return fmt.Errorf("instance-id is required")
	}
	if c.CSVFile == "" {
		return fmt.Errorf("csv-file is required")
	}
	return nil
}
