package task

import (
	"context"
	"strconv"
	"testing"

	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/testutil"
)

func itoa(i int) string { return strconv.Itoa(i) }

// ============================================================================
// BENCHMARKS
// ============================================================================

func BenchmarkListByProject(b *testing.B) {
	db := testutil.SetupTestDB(b)
	userID := testutil.CreateTestUser(b, db, "bench")
	projectID := testutil.CreateTestProject(b, db, userID, "Benchmark Project")
	for i := 0; i < 500; i++ {
		testutil.CreateTestTask(b, db, projectID, "task "+itoa(i), i%3 == 0)
	}
	svc := NewService(database.NewRepository(db), nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.ListByProject(ctx, projectID, models.PageRequest{Size: 20, Index: i % 25}); err != nil {
			b.Fatalf("ListByProject failed: %v", err)
		}
	}
}

func BenchmarkCreateTask(b *testing.B) {
	db := testutil.SetupTestDB(b)
	userID := testutil.CreateTestUser(b, db, "bench")
	projectID := testutil.CreateTestProject(b, db, userID, "Benchmark Project")
	svc := NewService(database.NewRepository(db), nil)
	ctx := context.Background()
	caller := &models.Principal{UserID: userID, Username: "bench"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.CreateTask(ctx, caller, CreateTaskRequest{ProjectID: projectID, Title: "task"}); err != nil {
			b.Fatalf("CreateTask failed: %v", err)
		}
	}
}

func BenchmarkUpdateTask(b *testing.B) {
	db := testutil.SetupTestDB(b)
	userID := testutil.CreateTestUser(b, db, "bench")
	projectID := testutil.CreateTestProject(b, db, userID, "Benchmark Project")
	taskID := testutil.CreateTestTask(b, db, projectID, "task", false)
	svc := NewService(database.NewRepository(db), nil)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := UpdateTaskRequest{ID: taskID, Title: "task", Completed: i%2 == 0}
		if _, err := svc.UpdateTask(ctx, nil, req); err != nil {
			b.Fatalf("UpdateTask failed: %v", err)
		}
	}
}
