// Package cli wires an in-memory App into cobra commands for CLI tests.
// It lives apart from testutil so service tests can import testutil
// without pulling in the app container.
package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/auth"
	tallycli "github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
func SetupCLITest(t *testing.T, opts ...app.Option) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// Minimum bcrypt cost keeps register tests fast
	opts = append([]app.Option{app.WithAuthOptions(auth.WithBcryptCost(bcrypt.MinCost))}, opts...)
	return db, app.New(database.NewRepository(db), opts...)
}

// ExecuteCLICommand executes a CLI command against testApp and captures stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	testutil.SetupCobraCommand(cmd, args)
	ctxWithApp := tallycli.WithApp(ctx, testApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})
	return output, executeErr
}
