// Package config holds the runtime configuration shared by every
// command. Values come from defaults, an optional aloft.yaml in the
// working directory, and ALOFT_* environment variables, in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete aloft configuration. It is loaded once at
// startup and handed to the components that need it; nothing reads
// viper after that.
type Config struct {
	// Endpoint is the base URL of the platform API
	Endpoint string `mapstructure:"endpoint"`
	// Login and Password authenticate against the platform
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`

	Polling   PollingConfig   `mapstructure:"polling"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// PollingConfig controls the status polling loop
type PollingConfig struct {
	// IntervalSeconds is the pause between status checks. It applies to
	// every run of this process; there is no per-launch override.
	IntervalSeconds int `mapstructure:"interval_seconds"`
	// ReturnValuesGraceSeconds is how long to wait after the expected
	// status is reached before reading return values, giving the
	// platform time to publish them.
	ReturnValuesGraceSeconds int `mapstructure:"return_values_grace_seconds"`
}

// WorkspaceConfig controls where files are staged and written
type WorkspaceConfig struct {
	// Root is the working directory of the pipeline step
	Root string `mapstructure:"root"`
	// SharedRoot is a directory visible to every node of the pipeline.
	// Empty means single-node operation: staging falls back to Root and
	// artifact mirroring is disabled.
	SharedRoot string `mapstructure:"shared_root"`
}

// DatabaseConfig selects and configures the state store
type DatabaseConfig struct {
	// Driver is either "sqlite" (default) or "postgres"
	Driver string `mapstructure:"driver"`
	// Path is the sqlite database file
	Path string `mapstructure:"path"`
	// Postgres connection settings
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// Interval returns the polling interval as a time.Duration
func (c *PollingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// ReturnValuesGrace returns the grace period as a time.Duration
func (c *PollingConfig) ReturnValuesGrace() time.Duration {
	return time.Duration(c.ReturnValuesGraceSeconds) * time.Second
}

// StagingRoot returns the directory manifests are staged into: the
// shared root when one is configured, the workspace root otherwise.
func (w *WorkspaceConfig) StagingRoot() string {
	if w.SharedRoot != "" {
		return w.SharedRoot
	}
	return w.Root
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Endpoint: "",
		Login:    "",
		Password: "",
		Polling: PollingConfig{
			IntervalSeconds:          5,
			ReturnValuesGraceSeconds: 2,
		},
		Workspace: WorkspaceConfig{
			Root:       ".",
			SharedRoot: "",
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    ".aloft/aloft.db",
			Host:    "localhost",
			Port:    5432,
			User:    "aloft",
			Name:    "aloft",
			SSLMode: "disable",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("endpoint", defaults.Endpoint)
	viper.SetDefault("login", defaults.Login)
	viper.SetDefault("password", defaults.Password)

	viper.SetDefault("polling.interval_seconds", defaults.Polling.IntervalSeconds)
	viper.SetDefault("polling.return_values_grace_seconds", defaults.Polling.ReturnValuesGraceSeconds)

	viper.SetDefault("workspace.root", defaults.Workspace.Root)
	viper.SetDefault("workspace.shared_root", defaults.Workspace.SharedRoot)

	viper.SetDefault("database.driver", defaults.Database.Driver)
	viper.SetDefault("database.path", defaults.Database.Path)
	viper.SetDefault("database.host", defaults.Database.Host)
	viper.SetDefault("database.port", defaults.Database.Port)
	viper.SetDefault("database.user", defaults.Database.User)
	viper.SetDefault("database.password", defaults.Database.Password)
	viper.SetDefault("database.name", defaults.Database.Name)
	viper.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
}

// Load reads the configuration from viper into a Config struct.
// Validation is separate: commands that never talk to the platform can
// run with incomplete access settings.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the platform access settings are usable. It is
// called once at the start of anything that talks to the platform.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Endpoint) == "" {
		problems = append(problems, "endpoint is not set")
	}
	if strings.TrimSpace(c.Login) == "" {
		problems = append(problems, "login is not set")
	}
	if strings.TrimSpace(c.Password) == "" {
		problems = append(problems, "password is not set")
	}
	if c.Polling.IntervalSeconds <= 0 {
		problems = append(problems, "polling interval must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration, check platform access settings: %s", strings.Join(problems, "; "))
	}
	return nil
}
