package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// CaptureOutput returns everything fn writes to os.Stdout.
// Commands print through os.Stdout, so tests using it must not run in parallel.
func CaptureOutput(t testing.TB, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	return <-outC
}

// ExecuteCommand runs a cobra command and captures its stdout
func ExecuteCommand(t testing.TB, cmd *cobra.Command) (string, error) {
	t.Helper()

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return output, executeErr
}

// ParseJSON decodes the --json envelope printed by a command
func ParseJSON(t testing.TB, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// JSONData returns the "data" object of a successful --json envelope
func JSONData(t testing.TB, output string) map[string]interface{} {
	t.Helper()

	result := ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success envelope, got: %s", output)
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Envelope has no data object: %s", output)
	}
	return data
}

// SetupCobraCommand sets args and silences cobra's own usage and error printing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
