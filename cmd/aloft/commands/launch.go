package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/artifact"
	"github.com/aloftlabs/aloft/internal/db/repos"
	"github.com/aloftlabs/aloft/internal/launch"
	"github.com/aloftlabs/aloft/internal/manifest"
	"github.com/aloftlabs/aloft/internal/platform"
	"github.com/aloftlabs/aloft/internal/vars"
)

// Launch flag names
const (
	flagApplication     = "application"
	flagEnvironment     = "environment"
	flagManifest        = "manifest"
	flagParameters      = "parameters"
	flagExpectedStatus  = "expected-status"
	flagTimeout         = "timeout"
	flagOutputFile      = "output-file"
	flagFailureReaction = "failure-reaction"
	flagBuildID         = "build-id"
)

func init() {
	launchCmd.Flags().StringP(flagApplication, "a", "", "Application ID to launch")
	launchCmd.Flags().StringP(flagEnvironment, "e", "", "Environment ID to launch into")
	launchCmd.Flags().StringP(flagManifest, "m", "", "Manifest file to upload before launching")
	launchCmd.Flags().StringP(flagParameters, "p", "", "Launch parameters as a JSON object")
	launchCmd.Flags().String(flagExpectedStatus, string(platform.StatusRunning), "Status the instance must reach")
	launchCmd.Flags().Int(flagTimeout, 600, "Seconds to wait for the expected status")
	launchCmd.Flags().StringP(flagOutputFile, "o", "", "File to write the launch result document to")
	launchCmd.Flags().String(flagFailureReaction, string(launch.ReactionFailure),
		"What a missed status does to the run: failure, unstable or success")
	launchCmd.Flags().String(flagBuildID, "",
		"Build ID scoping variables and run history (default $ALOFT_BUILD_ID, then \"local\")")
	_ = launchCmd.MarkFlagRequired(flagApplication)
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch an application and wait for its instance",
	Long: `Launch uploads an optional manifest, starts an instance of the given
application, waits for it to reach the expected status, and writes the
launch result document. The instance id is saved as the build variable
"instance-id" so later pipeline steps can find it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		params, err := launchParams(cmd)
		if err != nil {
			return err
		}

		if err := initClient(); err != nil {
			return err
		}

		database, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		orchestrator := launch.NewOrchestrator(
			cfg,
			apiClient,
			vars.NewDatabaseStore(repos.NewVariableRepository(database), params.BuildID),
			manifest.NewStager(cfg.Workspace.StagingRoot()),
			artifact.NewFileStorage(cfg.Workspace.Root, cfg.Workspace.SharedRoot),
			launch.NewRecorder(repos.NewRunRepository(database)),
		)

		// Ctrl-C and SIGTERM interrupt the wait; the run then ends as
		// a hard failure.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, runErr := orchestrator.Run(ctx, params)

		prettyJSON, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))

		if report.Fatal() {
			return runErr
		}
		return nil
	},
}

// launchParams assembles launch.Params from the command flags.
func launchParams(cmd *cobra.Command) (launch.Params, error) {
	var params launch.Params

	application, err := cmd.Flags().GetString(flagApplication)
	if err != nil {
		return params, fmt.Errorf("error getting application flag: %w", err)
	}

	environment, err := cmd.Flags().GetString(flagEnvironment)
	if err != nil {
		return params, fmt.Errorf("error getting environment flag: %w", err)
	}

	manifestPath, err := cmd.Flags().GetString(flagManifest)
	if err != nil {
		return params, fmt.Errorf("error getting manifest flag: %w", err)
	}

	parameters, err := cmd.Flags().GetString(flagParameters)
	if err != nil {
		return params, fmt.Errorf("error getting parameters flag: %w", err)
	}

	expectedStatus, err := cmd.Flags().GetString(flagExpectedStatus)
	if err != nil {
		return params, fmt.Errorf("error getting expected-status flag: %w", err)
	}

	timeoutSeconds, err := cmd.Flags().GetInt(flagTimeout)
	if err != nil {
		return params, fmt.Errorf("error getting timeout flag: %w", err)
	}
	if timeoutSeconds < 0 {
		return params, fmt.Errorf("timeout cannot be negative")
	}

	outputFile, err := cmd.Flags().GetString(flagOutputFile)
	if err != nil {
		return params, fmt.Errorf("error getting output-file flag: %w", err)
	}

	reaction, err := cmd.Flags().GetString(flagFailureReaction)
	if err != nil {
		return params, fmt.Errorf("error getting failure-reaction flag: %w", err)
	}

	params = launch.Params{
		BuildID:         resolveBuildID(cmd),
		ApplicationID:   application,
		EnvironmentID:   environment,
		ManifestPath:    manifestPath,
		ExtraParameters: parameters,
		ExpectedStatus:  platform.ParseStatusCode(expectedStatus),
		Timeout:         time.Duration(timeoutSeconds) * time.Second,
		OutputPath:      outputFile,
		FailureReaction: launch.ParseReaction(reaction),
	}
	return params, nil
}

// GetLaunchCmd returns the launch command
func GetLaunchCmd() *cobra.Command {
	return launchCmd
}
