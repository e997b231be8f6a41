package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/platform"
)

// envListOutput represents the output for a list of environments
type envListOutput struct {
	Environments []platform.Environment `json:"environments"`
}

var envsCmd = &cobra.Command{
	Use:   "envs",
	Short: "List environments available on the platform",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initClient(); err != nil {
			return err
		}

		environments, err := apiClient.ListEnvironments(context.Background())
		if err != nil {
			return fmt.Errorf("error listing environments: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(envListOutput{Environments: environments}, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		return nil
	},
}

// GetEnvsCmd returns the envs command
func GetEnvsCmd() *cobra.Command {
	return envsCmd
}
