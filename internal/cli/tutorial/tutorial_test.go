package tutorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/testutil"
)

func TestTutorial(t *testing.T) {
	cmd := TutorialCmd()
	testutil.SetupCobraCommand(cmd, []string{"--raw"})
	output, err := testutil.ExecuteCommand(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, tutorialContent, output)

	cmd = TutorialCmd()
	testutil.SetupCobraCommand(cmd, nil)
	output, err = testutil.ExecuteCommand(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, output, "quickstart")
}
