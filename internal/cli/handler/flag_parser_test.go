package handler

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/cli"
)

// createTestCommand builds a command with every flag the parser reads
func createTestCommand(t *testing.T, args ...string) *FlagParser {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("id", 0, "")
	cmd.Flags().Int("project", 0, "")
	cmd.Flags().String("user", "", "")
	cmd.Flags().String("title", "", "")
	cmd.Flags().String("deadline", "", "")
	cmd.Flags().Bool("completed", false, "")
	AddPageFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return NewFlagParser(cmd, cmd.Flags().Args(), 10)
}

func TestParseID(t *testing.T) {
	p := createTestCommand(t, "--id", "5")
	id, err := p.ParseID("id")
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	p = createTestCommand(t)
	_, err = p.ParseID("id")
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestParseProjectID(t *testing.T) {
	t.Setenv(ProjectEnv, "")
	p := createTestCommand(t)
	_, err := p.ParseProjectID()
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	t.Setenv(ProjectEnv, "12")
	id, err := p.ParseProjectID()
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	// Flag takes precedence over the environment
	p = createTestCommand(t, "--project", "3")
	id, err = p.ParseProjectID()
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	t.Setenv(ProjectEnv, "abc")
	_, err = createTestCommand(t).ParseProjectID()
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestParseUsername(t *testing.T) {
	t.Setenv(UserEnv, "from-env")
	assert.Equal(t, "from-env", createTestCommand(t).ParseUsername())
	assert.Equal(t, "alice", createTestCommand(t, "--user", "alice").ParseUsername())

	t.Setenv(UserEnv, "")
	assert.Empty(t, createTestCommand(t).ParseUsername())
}

func TestParseDeadline(t *testing.T) {
	d, err := createTestCommand(t, "--deadline", "2024-03-01").ParseDeadline("deadline")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	d, err = createTestCommand(t).ParseDeadline("deadline")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = createTestCommand(t, "--deadline", "03/01/2024").ParseDeadline("deadline")
	assert.True(t, apperror.Is(err, apperror.Validation))
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestParsePage(t *testing.T) {
	page, err := createTestCommand(t).ParsePage()
	require.NoError(t, err)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 0, page.Index)

	page, err = createTestCommand(t, "--page", "2", "--size", "0").ParsePage()
	require.NoError(t, err)
	assert.Equal(t, 0, page.Size, "explicit size is passed through for the service to reject")
	assert.Equal(t, 2, page.Index)
}

func TestChangedAndBool(t *testing.T) {
	p := createTestCommand(t, "--completed")
	assert.True(t, p.Changed("completed"))
	assert.False(t, p.Changed("title"))

	v, err := p.ParseBool("completed")
	require.NoError(t, err)
	assert.True(t, v)
}
