// Package config loads the tool's configuration from a .env file and
// the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultScope = "https://www.googleapis.com/auth/cloud-platform"

// Config holds everything the client, credential provider, and tracker
// need. It is built once at the command boundary and threaded into
// constructors; nothing reads the environment after Load returns.
type Config struct {
	// Auth
	ServiceAccountFile string
	Scope              string

	// Instance
	ProjectID  string
	Location   string
	InstanceID string
	GCSBucket  string

	// API
	BaseURL        string
	RequestTimeout time.Duration

	// Tracking
	PollInterval time.Duration
	PollMaxWait  time.Duration
}

// Load reads the given .env file (its absence is not an error; real
// environment variables always win) and assembles the configuration.
// All missing required variables are reported in one error.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	cfg := &Config{
		ServiceAccountFile: os.Getenv("SECOPS_ACCOUNT_JSON"),
		Scope:              getEnv("SECOPS_SCOPES", defaultScope),
		ProjectID:          os.Getenv("CHRONICLE_PROJECT_ID"),
		Location:           os.Getenv("CHRONICLE_LOCATION"),
		InstanceID:         os.Getenv("CHRONICLE_INSTANCE_ID"),
		GCSBucket:          os.Getenv("CHRONICLE_DATA_BUCKET"),
	}

	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{"SECOPS_ACCOUNT_JSON", cfg.ServiceAccountFile},
		{"CHRONICLE_PROJECT_ID", cfg.ProjectID},
		{"CHRONICLE_LOCATION", cfg.Location},
		{"CHRONICLE_INSTANCE_ID", cfg.InstanceID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required variables: %s", strings.Join(missing, ", "))
	}

	cfg.BaseURL = getEnv("SECOPS_API_BASE_URL",
		fmt.Sprintf("https://chronicle.%s.googleapis.com", cfg.Location))

	var err error
	if cfg.RequestTimeout, err = getEnvDuration("SECOPS_REQUEST_TIMEOUT", 60, time.Second); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getEnvDuration("SECOPS_POLL_INTERVAL", 30, time.Second); err != nil {
		return nil, err
	}
	if cfg.PollMaxWait, err = getEnvDuration("SECOPS_POLL_MAX_WAIT", 120, time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration reads a positive integer count of unit from the
// environment, falling back when unset.
func getEnvDuration(key string, fallback int, unit time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * unit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return time.Duration(n) * unit, nil
}
