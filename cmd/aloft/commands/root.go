package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/aloftlabs/aloft/internal/config"
	"github.com/aloftlabs/aloft/internal/constants"
	"github.com/aloftlabs/aloft/internal/db"
	"github.com/aloftlabs/aloft/internal/logger"
	"github.com/aloftlabs/aloft/internal/platform"
)

// persistent flag names
const (
	flagConfig = "config"
)

var (
	// cfg holds the configuration every command reads. The root
	// command's PersistentPreRunE fills it before any RunE executes.
	cfg *config.Config
	// apiClient is the shared platform client instance. Remote commands
	// build it through initClient; tests substitute a mock.
	apiClient platform.Client
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "aloft",
	Short: "Aloft CLI - launch applications and track their instances",
	Long: `Aloft launches applications on the orchestration platform, waits for
their instances to reach a target status, and carries launch results
from one pipeline step to the next.`,
}

func init() {
	// Assigned here rather than in the literal: the closure reaches
	// initConfig, which reads RootCmd, and that reference loop is an
	// initialization cycle when written inside the declaration.
	RootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		// Values from .env feed the logger and the viper environment
		// lookup below. A missing file is fine.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error loading .env file: %w", err)
		}

		logger.Initialize()
		initConfig()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		return nil
	}

	RootCmd.PersistentFlags().StringP(flagConfig, "c", "", "config file (default is ./aloft.yaml)")

	RootCmd.AddCommand(GetLaunchCmd())
	RootCmd.AddCommand(GetStatusCmd())
	RootCmd.AddCommand(GetAppsCmd())
	RootCmd.AddCommand(GetEnvsCmd())
	RootCmd.AddCommand(GetVarsCmd())
	RootCmd.AddCommand(GetRunsCmd())
}

// initConfig wires viper to the aloft config file and the ALOFT_*
// environment variables.
func initConfig() {
	// Defaults first so they apply even without a config file
	config.SetDefaults()

	if cfgFile, err := RootCmd.PersistentFlags().GetString(flagConfig); err == nil && cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("aloft")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ALOFT")
	// ALOFT_POLLING_INTERVAL_SECONDS maps to polling.interval_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initClient builds the shared platform client from the loaded
// configuration. Platform access settings are checked first so a
// misconfigured command fails with a clear message instead of a
// transport error.
func initClient() error {
	if apiClient != nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := platform.NewClient(&platform.ClientOptions{
		BaseURL:  cfg.Endpoint,
		Login:    cfg.Login,
		Password: cfg.Password,
	})
	if err != nil {
		return err
	}
	apiClient = client
	return nil
}

// openDatabase opens the state database selected by the loaded
// configuration. The returned func closes the underlying connection.
func openDatabase() (*gorm.DB, func(), error) {
	database, err := db.New(db.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error opening state database: %w", err)
	}

	closeDB := func() {
		sqlDB, err := database.DB()
		if err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	return database, closeDB, nil
}

// resolveBuildID resolves the build scope for state commands: the
// build-id flag first, then ALOFT_BUILD_ID, then "local".
func resolveBuildID(cmd *cobra.Command) string {
	// cmd.Flag searches the current command and its parents
	if flag := cmd.Flag(flagBuildID); flag != nil && flag.Value.String() != "" {
		return flag.Value.String()
	}
	if id := os.Getenv(constants.EnvBuildID); id != "" {
		return id
	}
	return "local"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
