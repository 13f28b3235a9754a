package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides file values with TALLY_* variables. Every malformed
// value is collected so they can be reported together.
func (c *Config) applyEnv() error {
	var problems []string

	c.Server.Addr = envString("TALLY_ADDR", c.Server.Addr)
	if origins, ok := os.LookupEnv("TALLY_CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(origins)
	}
	c.Server.RequestTimeout = envDuration("TALLY_REQUEST_TIMEOUT", c.Server.RequestTimeout, &problems)

	c.Database.Path = envString("TALLY_DB_PATH", c.Database.Path)

	c.Auth.JWTSecret = envString("TALLY_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = envDuration("TALLY_TOKEN_TTL", c.Auth.TokenTTL, &problems)

	c.Pagination.DefaultSize = envInt("TALLY_PAGE_SIZE", c.Pagination.DefaultSize, &problems)
	c.Pagination.MaxSize = envInt("TALLY_MAX_PAGE_SIZE", c.Pagination.MaxSize, &problems)

	c.Security.EnforceOwnership = envBool("TALLY_ENFORCE_OWNERSHIP", c.Security.EnforceOwnership, &problems)

	c.Log.Level = envString("TALLY_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("TALLY_LOG_FORMAT", c.Log.Format)
	c.Log.File = envString("TALLY_LOG_FILE", c.Log.File)

	if len(problems) > 0 {
		return fmt.Errorf("invalid environment:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int, problems *[]string) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid value for %s: expected integer, got '%s'", key, raw))
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid value for %s: expected duration, got '%s'", key, raw))
		return fallback
	}
	return value
}

func envBool(key string, fallback bool, problems *[]string) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid value for %s: expected boolean, got '%s'", key, raw))
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
