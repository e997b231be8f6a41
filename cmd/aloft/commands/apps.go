package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/platform"
)

// appListOutput represents the output for a list of applications
type appListOutput struct {
	Applications []platform.Application `json:"applications"`
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List applications available on the platform",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initClient(); err != nil {
			return err
		}

		apps, err := apiClient.ListApplications(context.Background())
		if err != nil {
			return fmt.Errorf("error listing applications: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(appListOutput{Applications: apps}, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		return nil
	},
}

// GetAppsCmd returns the apps command
func GetAppsCmd() *cobra.Command {
	return appsCmd
}
