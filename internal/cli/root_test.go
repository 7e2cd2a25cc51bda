package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "--format", "xml", "catalog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootListsSubcommands(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"eval", "sum", "catalog", "check", "scan"} {
		assert.Contains(t, out, sub)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
