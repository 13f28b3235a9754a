package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Pagination PaginationConfig `yaml:"pagination"`
	Security   SecurityConfig   `yaml:"security"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configures the HTTP boundary
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DatabaseConfig locates the SQLite file. Empty means ~/.tally/tally.db.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures token signing
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// PaginationConfig bounds page requests at the boundaries
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// SecurityConfig holds access-control switches
type SecurityConfig struct {
	// EnforceOwnership rejects writes to projects and tasks the caller does not own
	EnforceOwnership bool `yaml:"enforce_ownership"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from $TALLY_CONFIG or the user's config directory.
// A .env file in the working directory is loaded first, then TALLY_*
// variables override whatever the file set. Returns the default config
// if no file exists.
func Load() (*Config, error) {
	// .env is optional, but a broken one is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath, err := Path()
	if err != nil {
		configPath = ""
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path (skipped when empty or missing), then
// applies environment overrides and defaults
func LoadFile(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
			}
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves the config to path, creating its directory
func (c *Config) Save(configPath string) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may hold the JWT secret
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	if explicit := os.Getenv("TALLY_CONFIG"); explicit != "" {
		return explicit, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tally", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tally", "config.yaml"), nil
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var problems []string
	if c.Pagination.DefaultSize > c.Pagination.MaxSize {
		problems = append(problems, fmt.Sprintf("pagination.default_size (%d) exceeds pagination.max_size (%d)",
			c.Pagination.DefaultSize, c.Pagination.MaxSize))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Pagination.DefaultSize <= 0 {
		c.Pagination.DefaultSize = 10
	}
	if c.Pagination.MaxSize <= 0 {
		c.Pagination.MaxSize = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
