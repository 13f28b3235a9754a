// Package handler provides flag parsing utilities
package handler

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
)

// Environment fallbacks for --project and --user
const (
	ProjectEnv = "TALLY_PROJECT"
	UserEnv    = "TALLY_USER"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd             *cobra.Command
	args            []string
	defaultPageSize int
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command, args []string, defaultPageSize int) *FlagParser {
	if defaultPageSize <= 0 {
		defaultPageSize = models.DefaultPageSize
	}
	return &FlagParser{cmd: cmd, args: args, defaultPageSize: defaultPageSize}
}

// Args returns the positional arguments
func (p *FlagParser) Args() []string {
	return p.args
}

// Changed reports whether the flag was set on the command line
func (p *FlagParser) Changed(flagName string) bool {
	return p.cmd.Flags().Changed(flagName)
}

// ParseProjectID extracts project ID from --project flag or TALLY_PROJECT
func (p *FlagParser) ParseProjectID() (int, error) {
	if p.cmd.Flags().Changed("project") {
		return p.ParseID("project")
	}
	raw := os.Getenv(ProjectEnv)
	if raw == "" {
		return 0, cli.NewUsageError("no project specified: pass --project or run eval $(tally use project <id>)")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, cli.NewUsageError("invalid %s value %q", ProjectEnv, raw)
	}
	return id, nil
}

// ParseUsername extracts the acting user from --user or TALLY_USER.
// An empty result means no acting user.
func (p *FlagParser) ParseUsername() string {
	if p.cmd.Flags().Lookup("user") != nil {
		if v, _ := p.cmd.Flags().GetString("user"); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(os.Getenv(UserEnv))
}

// ParseID extracts a positive ID from a flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	id, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.NewUsageError("failed to parse --%s flag: %v", flagName, err)
	}
	if id <= 0 {
		return 0, cli.NewUsageError("--%s must be greater than 0", flagName)
	}
	return id, nil
}

// ParseString extracts a string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	v, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.NewUsageError("failed to parse --%s flag: %v", flagName, err)
	}
	return v, nil
}

// ParseBool extracts a bool flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	v, err := p.cmd.Flags().GetBool(flagName)
	if err != nil {
		return false, cli.NewUsageError("failed to parse --%s flag: %v", flagName, err)
	}
	return v, nil
}

// ParseDeadline extracts a YYYY-MM-DD date. Empty means no deadline.
func (p *FlagParser) ParseDeadline(flagName string) (models.Date, error) {
	raw, err := p.ParseString(flagName)
	if err != nil {
		return models.Date{}, err
	}
	d, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return models.Date{}, apperror.NewValidation(err)
	}
	return d, nil
}

// ParsePage reads --page (zero-indexed) and --size. An unset size uses the
// configured default. Bounds are enforced by the services.
func (p *FlagParser) ParsePage() (models.PageRequest, error) {
	page, err := p.cmd.Flags().GetInt("page")
	if err != nil {
		return models.PageRequest{}, cli.NewUsageError("failed to parse --page flag: %v", err)
	}
	size := p.defaultPageSize
	if p.cmd.Flags().Changed("size") {
		if size, err = p.cmd.Flags().GetInt("size"); err != nil {
			return models.PageRequest{}, cli.NewUsageError("failed to parse --size flag: %v", err)
		}
	}
	return models.PageRequest{Size: size, Index: page}, nil
}

// AddPageFlags registers --page and --size
func AddPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "Page number (0-indexed)")
	cmd.Flags().Int("size", 0, "Items per page (default from config)")
}
