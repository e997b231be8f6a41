// Package db provides database connectivity and operations
package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aloftlabs/aloft/internal/db/models"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database configuration constants
const (
	// DefaultSQLitePath is the default sqlite database file
	DefaultSQLitePath = ".aloft/aloft.db"
	// DefaultHost is the default postgres host
	DefaultHost = "localhost"
	// DefaultPort is the default postgres port
	DefaultPort = 5432
	// DefaultUser is the default postgres user
	DefaultUser = "aloft"
	// DefaultDBName is the default database name
	DefaultDBName = "aloft"
	// DefaultSSLMode is the default postgres ssl mode
	DefaultSSLMode = "disable"
)

// Options represents database connection configuration options.
// SQLite is the single-node default; postgres is for pipelines whose
// steps run on different nodes and need one shared store.
type Options struct {
	Driver string

	// sqlite
	Path string

	// postgres
	Host     string
	User     string
	Password string
	DBName   string
	Port     int
	SSLMode  string

	LogLevel logger.LogLevel
}

// New creates a new database connection with the given options
func New(opts Options) (*gorm.DB, error) {
	opts = setDefaults(opts)

	// Configure custom logger to ignore record not found errors
	newLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	config := &gorm.Config{
		Logger: newLogger,
	}

	dialector, err := openDialector(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverSQLite:
		// In-memory DSNs have no parent directory to create
		if !strings.HasPrefix(opts.Path, "file:") {
			if dir := filepath.Dir(opts.Path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("error creating database directory: %w", err)
				}
			}
		}
		return sqlite.Open(opts.Path), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			opts.Host, opts.User, opts.Password, opts.DBName, opts.Port, opts.SSLMode)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}
}

func setDefaults(opts Options) Options {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.Path == "" {
		opts.Path = DefaultSQLitePath
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.User == "" {
		opts.User = DefaultUser
	}
	if opts.DBName == "" {
		opts.DBName = DefaultDBName
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.SSLMode == "" {
		opts.SSLMode = DefaultSSLMode
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	return opts
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Run{},
		&models.Variable{},
	)
}
