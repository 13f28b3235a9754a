package task

import (
	"context"
	"database/sql"
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

// setupProject clears the shell context and seeds one user with one project
func setupProject(t *testing.T) (*sql.DB, int, func(args ...string) (string, error)) {
	t.Helper()
	t.Setenv(handler.UserEnv, "")
	t.Setenv(handler.ProjectEnv, "")
	db, a := clitest.SetupCLITest(t)
	alice := testutil.CreateTestUser(t, db, "alice")
	projectID := testutil.CreateTestProject(t, db, alice, "Board")
	run := func(args ...string) (string, error) {
		t.Helper()
		cmd := TaskCmd()
		return clitest.ExecuteCLICommand(t, a, cmd, args)
	}
	return db, projectID, run
}

func TestCreateTask(t *testing.T) {
	db, projectID, run := setupProject(t)
	pid := strconv.Itoa(projectID)

	t.Run("with deadline", func(t *testing.T) {
		output, err := run("create", "--project", pid, "--title", "Ship", "--deadline", "2024-06-30", "--quiet")
		require.NoError(t, err)

		var deadline sql.NullString
		err = db.QueryRowContext(context.Background(),
			"SELECT deadline FROM tasks WHERE id = ?", strings.TrimSpace(output)).Scan(&deadline)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(deadline.String, "2024-06-30"))
	})

	t.Run("project from environment", func(t *testing.T) {
		t.Setenv(handler.ProjectEnv, pid)
		output, err := run("create", "--title", "Env task", "--completed", "--json")
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Equal(t, true, data["completed"])
		assert.Equal(t, float64(projectID), data["projectId"])
	})

	t.Run("no project", func(t *testing.T) {
		_, err := run("create", "--title", "Lost", "--json")
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})

	t.Run("unknown project leaves no row", func(t *testing.T) {
		before := testutil.CountRows(t, db, "tasks")
		_, err := run("create", "--project", "999", "--title", "Nowhere", "--json")
		assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
		assert.Equal(t, before, testutil.CountRows(t, db, "tasks"))
	})

	t.Run("bad deadline", func(t *testing.T) {
		_, err := run("create", "--project", pid, "--title", "X", "--deadline", "tomorrow", "--json")
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
	})

	t.Run("title too long", func(t *testing.T) {
		_, err := run("create", "--project", pid, "--title", strings.Repeat("x", 256), "--json")
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
	})
}

func TestListTasks(t *testing.T) {
	db, projectID, run := setupProject(t)
	for i := 1; i <= 5; i++ {
		testutil.CreateTestTask(t, db, projectID, "task "+strconv.Itoa(i), i%2 == 0)
	}

	output, err := run("list", "--project", strconv.Itoa(projectID), "--size", "2", "--page", "2", "--json")
	require.NoError(t, err)

	data := testutil.JSONData(t, output)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "task 1", items[0].(map[string]interface{})["title"])
	assert.Equal(t, float64(3), data["totalPages"])

	_, err = run("list", "--project", strconv.Itoa(projectID), "--page", "-1", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestUpdateTask(t *testing.T) {
	db, projectID, run := setupProject(t)
	id := strconv.Itoa(testutil.CreateTestTask(t, db, projectID, "Draft", false))

	t.Run("requires a field", func(t *testing.T) {
		_, err := run("update", "--id", id, "--json")
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		_, err := run("update", "--id", id, "--deadline", "2025-01-02", "--quiet")
		require.NoError(t, err)

		output, err := run("update", "--id", id, "--completed", "--json")
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Equal(t, "Draft", data["title"])
		assert.Equal(t, "2025-01-02", data["deadline"])
		assert.Equal(t, true, data["completed"])
	})

	t.Run("clear deadline", func(t *testing.T) {
		output, err := run("update", "--id", id, "--deadline", "", "--json")
		require.NoError(t, err)

		data := testutil.JSONData(t, output)
		assert.Nil(t, data["deadline"])
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := run("update", "--id", "999", "--title", "X", "--json")
		assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
	})
}

func TestDoneAndShow(t *testing.T) {
	db, projectID, run := setupProject(t)
	id := strconv.Itoa(testutil.CreateTestTask(t, db, projectID, "Finish me", false))

	_, err := run("done", "--id", id, "--quiet")
	require.NoError(t, err)

	output, err := run("show", "--id", id, "--json")
	require.NoError(t, err)
	data := testutil.JSONData(t, output)
	assert.Equal(t, true, data["completed"])

	_, err = run("done", "--id", id, "--undo", "--quiet")
	require.NoError(t, err)

	output, err = run("show", "--id", id)
	require.NoError(t, err)
	assert.Contains(t, output, "Finish me")
}

func TestDeleteTask(t *testing.T) {
	db, projectID, run := setupProject(t)
	id := testutil.CreateTestTask(t, db, projectID, "Gone", false)

	output, err := run("delete", "--id", strconv.Itoa(id), "--quiet")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(id), strings.TrimSpace(output))
	assert.Equal(t, 0, testutil.CountRows(t, db, "tasks"))

	_, err = run("delete", "--id", strconv.Itoa(id), "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}
