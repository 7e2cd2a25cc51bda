package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeValueFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSumFixture(t *testing.T) {
	path := writeValueFile(t, `
name: triangle
values:
  - "(1,2)"
  - "(3,4)"
  - "(5,6)"
`)
	out, err := executeCommand(t, "sum", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(9,12)")
	assert.Contains(t, out, "3 value(s)")
}

func TestSumJSONOutput(t *testing.T) {
	path := writeValueFile(t, `
values:
  - "(1,1)"
  - "(2,2)"
`)
	out, err := executeCommand(t, "--format", "json", "sum", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "(3,3)", data["sum"])
	assert.Equal(t, float64(2), data["count"])
}

func TestSumRejectsUnknownFields(t *testing.T) {
	path := writeValueFile(t, `
value:
  - "(1,1)"
`)
	_, err := executeCommand(t, "sum", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSumRejectsEmptyList(t *testing.T) {
	path := writeValueFile(t, `
name: empty
values: []
`)
	_, err := executeCommand(t, "sum", path)
	require.Error(t, err)
}

func TestSumMalformedLiteral(t *testing.T) {
	path := writeValueFile(t, `
values:
  - "(1,1)"
  - "nope"
`)
	out, err := executeCommand(t, "sum", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeBadLiteral)
}

func TestSumMissingFile(t *testing.T) {
	_, err := executeCommand(t, "sum", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
