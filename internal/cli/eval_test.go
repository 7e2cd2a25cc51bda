package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalAdd(t *testing.T) {
	out, err := executeCommand(t, "eval", "(1.0,2.5)", "+", "(4.2,3.55)")
	require.NoError(t, err)
	assert.Contains(t, out, "(5.2,6.05)")
}

func TestEvalMagnitudeEquality(t *testing.T) {
	out, err := executeCommand(t, "eval", "(3,4)", "=", "(5,0)")
	require.NoError(t, err)
	assert.Contains(t, out, "= true")
}

func TestEvalComparator(t *testing.T) {
	out, err := executeCommand(t, "eval", "(56,-22.5)", "cmp", "(-43.2,-0.07)")
	require.NoError(t, err)
	assert.Contains(t, out, "= 1")
}

func TestEvalJSONOutput(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "eval", "(1,2)", "<", "(3,4)")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "true", data["result"])
	assert.Equal(t, "(1,2)", data["left"])
}

func TestEvalUnknownOperator(t *testing.T) {
	_, err := executeCommand(t, "eval", "(1,2)", "*", "(3,4)")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalMalformedLiteral(t *testing.T) {
	out, err := executeCommand(t, "eval", "1.0, 2.5)", "+", "(1,1)")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeBadLiteral)
}
