package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/db/models"
	"github.com/aloftlabs/aloft/internal/db/repos"
)

// Runs flag names
const (
	flagRunsLimit  = "limit"
	flagRunsOffset = "offset"
	flagRunsAll    = "all"
)

// runOutput represents the filtered output for a run
type runOutput struct {
	ID          uint   `json:"id"`
	BuildID     string `json:"build_id"`
	Application string `json:"application_id"`
	Environment string `json:"environment_id,omitempty"`
	InstanceID  string `json:"instance_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Result      string `json:"result"`
	Error       string `json:"error,omitempty"`
	Created     string `json:"created_at"`
}

// runListOutput represents the filtered output for a list of runs
type runListOutput struct {
	Runs []runOutput `json:"runs"`
}

func init() {
	runsCmd.PersistentFlags().String(flagBuildID, "",
		"Build ID to list runs for (default $ALOFT_BUILD_ID, then \"local\")")

	listRunsCmd.Flags().IntP(flagRunsLimit, "l", 0, "Limit the number of runs returned")
	listRunsCmd.Flags().Int(flagRunsOffset, 0, "Offset for paginating runs")
	listRunsCmd.Flags().Bool(flagRunsAll, false, "List runs of every build, not just the current one")

	runsCmd.AddCommand(listRunsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect launch run history",
}

var listRunsCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded launch runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, err := cmd.Flags().GetInt(flagRunsLimit)
		if err != nil {
			return fmt.Errorf("error getting limit flag: %w", err)
		}
		offset, err := cmd.Flags().GetInt(flagRunsOffset)
		if err != nil {
			return fmt.Errorf("error getting offset flag: %w", err)
		}
		all, err := cmd.Flags().GetBool(flagRunsAll)
		if err != nil {
			return fmt.Errorf("error getting all flag: %w", err)
		}

		buildID := ""
		if !all {
			buildID = resolveBuildID(cmd)
		}

		database, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		runs, err := repos.NewRunRepository(database).List(context.Background(), buildID, &models.ListOptions{
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("error listing runs: %w", err)
		}

		output := runListOutput{
			Runs: make([]runOutput, len(runs)),
		}
		for i, run := range runs {
			output.Runs[i] = runOutput{
				ID:          run.ID,
				BuildID:     run.BuildID,
				Application: run.ApplicationID,
				Environment: run.EnvironmentID,
				InstanceID:  run.InstanceID,
				Status:      run.Status,
				Result:      string(run.Result),
				Error:       run.Error,
				Created:     run.CreatedAt.Format("2006-01-02 15:04:05"),
			}
		}

		prettyJSON, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		return nil
	},
}

// GetRunsCmd returns the runs command
func GetRunsCmd() *cobra.Command {
	return runsCmd
}
