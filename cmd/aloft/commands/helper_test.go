package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aloftlabs/aloft/internal/config"
	"github.com/aloftlabs/aloft/internal/platform/mock"
)

// testConfig installs a fresh configuration pointing all state at
// temporary directories and restores the previous one when the test
// ends.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	original := cfg
	t.Cleanup(func() { cfg = original })

	cfg = config.Default()
	cfg.Endpoint = "https://platform.example.com"
	cfg.Login = "launcher"
	cfg.Password = "secret"
	cfg.Polling.ReturnValuesGraceSeconds = 0
	cfg.Workspace.Root = t.TempDir()
	cfg.Database.Path = filepath.Join(t.TempDir(), "state.db")
	return cfg
}

// swapClient substitutes the shared platform client with a mock and
// restores the original after the test.
func swapClient(t *testing.T) *mock.Client {
	t.Helper()

	original := apiClient
	t.Cleanup(func() { apiClient = original })

	mockClient := &mock.Client{}
	apiClient = mockClient
	return mockClient
}

// captureOutput points cmd and its subcommands at a buffer.
func captureOutput(cmd *cobra.Command) *bytes.Buffer {
	outputBuf := &bytes.Buffer{}
	cmd.SetOut(outputBuf)
	for _, subCmd := range cmd.Commands() {
		subCmd.SetOut(outputBuf)
	}
	return outputBuf
}

// resetFlags clears flag state that earlier executions of the shared
// command variables left behind.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, subCmd := range cmd.Commands() {
		resetFlags(t, subCmd)
	}
}
