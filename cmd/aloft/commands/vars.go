package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloftlabs/aloft/internal/db/repos"
	"github.com/aloftlabs/aloft/internal/vars"
)

// varOutput represents the output for a single build variable
type varOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// varListOutput represents the output for a list of build variables
type varListOutput struct {
	BuildID   string      `json:"build_id"`
	Variables []varOutput `json:"variables"`
}

func init() {
	varsCmd.PersistentFlags().String(flagBuildID, "",
		"Build ID scoping the variables (default $ALOFT_BUILD_ID, then \"local\")")

	varsCmd.AddCommand(getVarCmd)
	varsCmd.AddCommand(setVarCmd)
	varsCmd.AddCommand(listVarsCmd)
}

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Read and write build variables",
}

var getVarCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a build variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		store := vars.NewDatabaseStore(repos.NewVariableRepository(database), resolveBuildID(cmd))

		value, found, err := store.Get(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("error reading variable: %w", err)
		}
		if !found {
			return fmt.Errorf("variable %q is not set", args[0])
		}

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var setVarCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a build variable",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		store := vars.NewDatabaseStore(repos.NewVariableRepository(database), resolveBuildID(cmd))

		if err := store.Set(context.Background(), args[0], args[1]); err != nil {
			return fmt.Errorf("error saving variable: %w", err)
		}
		return nil
	},
}

var listVarsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variables of a build",
	RunE: func(cmd *cobra.Command, _ []string) error {
		buildID := resolveBuildID(cmd)

		database, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		variables, err := repos.NewVariableRepository(database).ListByBuildID(context.Background(), buildID)
		if err != nil {
			return fmt.Errorf("error listing variables: %w", err)
		}

		output := varListOutput{
			BuildID:   buildID,
			Variables: make([]varOutput, len(variables)),
		}
		for i, variable := range variables {
			output.Variables[i] = varOutput{
				Name:  variable.Name,
				Value: variable.Value,
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

// GetVarsCmd returns the vars command
func GetVarsCmd() *cobra.Command {
	return varsCmd
}
