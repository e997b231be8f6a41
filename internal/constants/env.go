// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvBuildID is the environment variable carrying the CI build identifier.
	// Pipeline steps that belong to the same build must agree on it so they
	// share one variable scope.
	EnvBuildID = "ALOFT_BUILD_ID"

	// EnvPassword is the environment variable containing the platform API
	// password. It is read separately from the config file so credentials
	// never have to live on disk.
	EnvPassword = "ALOFT_PASSWORD"
)
