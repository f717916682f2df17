// Package config loads sweep's configuration.
//
// Configuration lives in a config.yaml resolved from (in order) the
// --config directory, the current directory, and ~/.stalesweep. Every key
// can be overridden through the environment with a STALESWEEP_ prefix
// (STALESWEEP_INSTANCE, STALESWEEP_PASSWORD, ...). The viper singleton is
// initialized once at startup; LoadLocal in local.go bypasses it for
// diagnostics.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Recognized keys. instance, backups_location and deletion_location are
// required; the rest have defaults.
const (
	KeyInstance         = "instance"
	KeyBackupsLocation  = "backups_location"
	KeyDeletionLocation = "deletion_location"
	KeyGetSize          = "get_size"
	KeyLogDir           = "log_dir"
	KeyHTTPTimeout      = "http_timeout_seconds"
	KeyFetchWorkers     = "fetch_workers"
	KeyUsername         = "username"
	KeyPassword         = "password"
)

// Config is the resolved startup configuration.
type Config struct {
	// Instance is the ticketing system host, e.g. "example.service-now.com".
	Instance string
	// BackupsLocation is the directory holding live backup folders.
	BackupsLocation string
	// DeletionLocation is the staging directory for folders awaiting purge.
	DeletionLocation string
	// GetSize toggles the recursive folder-size computation during fetch.
	GetSize bool
	// LogDir is where debug.log, error.log and the deletion audit logs go.
	LogDir string
	// HTTPTimeoutSeconds bounds every remote call.
	HTTPTimeoutSeconds int
	// FetchWorkers bounds the concurrent ticket fetch pool.
	FetchWorkers int

	// Username and Password may come from config, env, or the login form.
	// They are never written back to disk.
	Username string
	Password string
}

var v *viper.Viper

// Initialize sets up the viper singleton. configDir, when non-empty, is
// searched first. Missing config files are not an error here; Load reports
// missing required keys instead so env-only setups keep working.
func Initialize(configDir string) error {
	v = viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.stalesweep")

	v.SetEnvPrefix("STALESWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyGetSize, false)
	v.SetDefault(KeyLogDir, ".")
	v.SetDefault(KeyHTTPTimeout, 30)
	v.SetDefault(KeyFetchWorkers, 8)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// Load resolves the configuration and validates required keys. The
// surrounding process treats an error here as fatal at startup.
func Load() (*Config, error) {
	if v == nil {
		return nil, fmt.Errorf("config not initialized")
	}

	cfg := &Config{
		Instance:           v.GetString(KeyInstance),
		BackupsLocation:    v.GetString(KeyBackupsLocation),
		DeletionLocation:   v.GetString(KeyDeletionLocation),
		GetSize:            v.GetBool(KeyGetSize),
		LogDir:             v.GetString(KeyLogDir),
		HTTPTimeoutSeconds: v.GetInt(KeyHTTPTimeout),
		FetchWorkers:       v.GetInt(KeyFetchWorkers),
		Username:           v.GetString(KeyUsername),
		Password:           v.GetString(KeyPassword),
	}

	var missing []string
	if cfg.Instance == "" {
		missing = append(missing, KeyInstance)
	}
	if cfg.BackupsLocation == "" {
		missing = append(missing, KeyBackupsLocation)
	}
	if cfg.DeletionLocation == "" {
		missing = append(missing, KeyDeletionLocation)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config keys: %s (set them in config.yaml or STALESWEEP_* env vars)", strings.Join(missing, ", "))
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 30
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 8
	}

	return cfg, nil
}

// ConfigFileUsed reports which config file viper resolved, if any.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}
