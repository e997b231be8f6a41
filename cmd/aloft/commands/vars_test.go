package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarsCommands(t *testing.T) {
	testConfig(t)

	cmd := GetVarsCmd()
	resetFlags(t, cmd)
	outputBuf := captureOutput(cmd)

	cmd.SetArgs([]string{"set", "instance-id", "i-77", "--build-id", "build-3"})
	require.NoError(t, cmd.Execute())

	// A variable of an unrelated build must stay invisible below.
	cmd.SetArgs([]string{"set", "endpoint", "https://other.example.com", "--build-id", "build-4"})
	require.NoError(t, cmd.Execute())

	outputBuf.Reset()
	cmd.SetArgs([]string{"get", "instance-id", "--build-id", "build-3"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "i-77", strings.TrimSpace(outputBuf.String()))

	outputBuf.Reset()
	cmd.SetArgs([]string{"list", "--build-id", "build-3"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, outputBuf.String(), `"build_id": "build-3"`)
	assert.Contains(t, outputBuf.String(), `"name": "instance-id"`)
	assert.Contains(t, outputBuf.String(), `"value": "i-77"`)
	assert.NotContains(t, outputBuf.String(), "endpoint")
}

func TestVarsGetCommand_Missing(t *testing.T) {
	testConfig(t)

	cmd := GetVarsCmd()
	resetFlags(t, cmd)
	captureOutput(cmd)

	cmd.SetArgs([]string{"get", "unknown", "--build-id", "build-3"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `variable "unknown" is not set`)
}
