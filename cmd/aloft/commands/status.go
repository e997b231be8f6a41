package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/platform"
)

// Status flag names
const (
	flagInstance = "instance"
)

func init() {
	statusCmd.Flags().StringP(flagInstance, "i", "", "Instance ID")
	_ = statusCmd.MarkFlagRequired(flagInstance)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current status of an instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		instanceID, err := cmd.Flags().GetString(flagInstance)
		if err != nil {
			return fmt.Errorf("error getting instance flag: %w", err)
		}
		if instanceID == "" {
			return fmt.Errorf("instance ID cannot be empty")
		}

		if err := initClient(); err != nil {
			return err
		}

		status, err := apiClient.GetStatus(context.Background(), platform.Instance{ID: instanceID})
		if err != nil {
			return fmt.Errorf("error getting status of instance %s: %w", instanceID, err)
		}

		prettyJSON, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		return nil
	},
}

// GetStatusCmd returns the status command
func GetStatusCmd() *cobra.Command {
	return statusCmd
}
