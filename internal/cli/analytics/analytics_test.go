package analytics

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/testutil"
	clitest "github.com/thenoetrevino/tally/internal/testutil/cli"
)

func TestAnalytics(t *testing.T) {
	t.Setenv(handler.ProjectEnv, "")
	db, a := clitest.SetupCLITest(t)
	owner := testutil.CreateTestUser(t, db, "alice")
	busy := testutil.CreateTestProject(t, db, owner, "Busy")
	empty := testutil.CreateTestProject(t, db, owner, "Empty")
	for i := 0; i < 4; i++ {
		testutil.CreateTestTask(t, db, busy, "t"+strconv.Itoa(i), i == 0)
	}

	t.Run("quarter done", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, AnalyticsCmd(), []string{"--project", strconv.Itoa(busy), "--json"})
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Equal(t, float64(4), data["totalTasks"])
		assert.Equal(t, float64(1), data["completedTasks"])
		assert.Equal(t, 0.25, data["percentageProgression"])
	})

	t.Run("no tasks is undefined", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, AnalyticsCmd(), []string{"--project", strconv.Itoa(empty), "--json"})
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Equal(t, float64(0), data["totalTasks"])
		assert.Nil(t, data["percentageProgression"])
	})

	t.Run("human output", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, AnalyticsCmd(), []string{"--project", strconv.Itoa(busy)})
		require.NoError(t, err)
		assert.Contains(t, output, "25")
	})

	t.Run("unknown project counts as empty", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, a, AnalyticsCmd(), []string{"--project", "999", "--json"})
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Equal(t, float64(0), data["totalTasks"])
		assert.Nil(t, data["percentageProgression"])
	})

	t.Run("no project", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, a, AnalyticsCmd(), []string{"--json"})
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})
}
