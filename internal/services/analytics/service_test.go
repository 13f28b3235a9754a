package analytics

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/testutil"
)

func TestProgression(t *testing.T) {
	t.Parallel()

	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))
	userID := testutil.CreateTestUser(t, db, "alice")
	projectID := testutil.CreateTestProject(t, db, userID, "Website")

	testutil.CreateTestTask(t, db, projectID, "a", true)
	testutil.CreateTestTask(t, db, projectID, "b", false)
	testutil.CreateTestTask(t, db, projectID, "c", false)
	testutil.CreateTestTask(t, db, projectID, "d", false)

	ctx := context.Background()

	total, err := svc.TotalTasks(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	completed, err := svc.CompletedTasks(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	progression, err := svc.Progression(ctx, projectID)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, progression, 1e-9)
}

func TestProgression_EmptyProject(t *testing.T) {
	t.Parallel()

	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))
	userID := testutil.CreateTestUser(t, db, "alice")
	projectID := testutil.CreateTestProject(t, db, userID, "Empty")

	progression, err := svc.Progression(context.Background(), projectID)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(progression))

	summary, err := svc.Summary(context.Background(), projectID)
	require.NoError(t, err)
	assert.True(t, summary.PercentageProgression.IsUndefined())

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"percentageProgression":null`)
}

func TestUnknownProjectCountsZero(t *testing.T) {
	t.Parallel()

	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))

	total, err := svc.TotalTasks(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	completed, err := svc.CompletedTasks(context.Background(), 4242)
	require.NoError(t, err)
	assert.Equal(t, 0, completed)
}

func TestSummary_CompletedNeverExceedsTotal(t *testing.T) {
	t.Parallel()

	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))
	userID := testutil.CreateTestUser(t, db, "alice")
	projectID := testutil.CreateTestProject(t, db, userID, "Mixed")

	for i := 0; i < 7; i++ {
		testutil.CreateTestTask(t, db, projectID, "t", i < 5)
		summary, err := svc.Summary(context.Background(), projectID)
		require.NoError(t, err)
		assert.LessOrEqual(t, summary.CompletedTasks, summary.TotalTasks)
		p := float64(summary.PercentageProgression)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
