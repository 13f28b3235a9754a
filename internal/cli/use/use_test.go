package use

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/testutil"
	clitest "github.com/thenoetrevino/tally/internal/testutil/cli"
)

func TestUseProject(t *testing.T) {
	t.Setenv(handler.ProjectEnv, "")
	db, a := clitest.SetupCLITest(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	id := testutil.CreateTestProject(t, db, owner, "Board")

	output, err := clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"project", strconv.Itoa(id)})
	require.NoError(t, err)
	assert.Equal(t, "export TALLY_PROJECT="+strconv.Itoa(id), strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"project", "--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset TALLY_PROJECT", strings.TrimSpace(output))

	_, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"project", "999"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"project", "abc"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	t.Setenv(handler.ProjectEnv, strconv.Itoa(id))
	output, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"project", "--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "Board")
}

func TestUseUser(t *testing.T) {
	t.Setenv(handler.UserEnv, "")
	db, a := clitest.SetupCLITest(t)
	testutil.CreateTestUser(t, db, "alice")

	output, err := clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"user", "alice"})
	require.NoError(t, err)
	assert.Equal(t, "export TALLY_USER=alice", strings.TrimSpace(output))

	_, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"user", "ghost"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	output, err = clitest.ExecuteCLICommand(t, a, UseCmd(), []string{"user", "--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "No user context set")
}
