package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestWithTx_RollsBackOnError(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash) VALUES ('rolled', 'x')`); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}

	found, err := exists(ctx, db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = 'rolled')`)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if found {
		t.Error("Expected insert to be rolled back")
	}
}

func TestWithTx_Commits(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	err := withTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (username, password_hash) VALUES ('kept', 'x')`)
		return err
	})
	if err != nil {
		t.Fatalf("withTx failed: %v", err)
	}

	n, err := count(ctx, db, `SELECT COUNT(*) FROM users WHERE username = 'kept'`)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 committed row, got %d", n)
	}
}

func TestNullStringConversions(t *testing.T) {
	t.Parallel()

	if got := NullStringToString(sql.NullString{}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
	if got := NullStringToString(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("Expected x, got %q", got)
	}
	if StringToNullString("").Valid {
		t.Error("Empty string should map to NULL")
	}
	if !StringToNullString("y").Valid {
		t.Error("Non-empty string should be valid")
	}
}
