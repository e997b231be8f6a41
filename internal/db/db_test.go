package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloftlabs/aloft/internal/db/models"
)

func TestNew_SQLite(t *testing.T) {
	database, err := New(Options{
		Driver: DriverSQLite,
		Path:   "file::memory:?cache=shared",
	})
	require.NoError(t, err)

	// Migration ran: the tables accept rows
	run := &models.Run{BuildID: "build-1", ApplicationID: "app-1"}
	require.NoError(t, database.Create(run).Error)
	assert.NotZero(t, run.ID)

	variable := &models.Variable{BuildID: "build-1", Name: "instance-id", Value: "i-1"}
	require.NoError(t, database.Create(variable).Error)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Options{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSetDefaults(t *testing.T) {
	opts := setDefaults(Options{})

	assert.Equal(t, DriverSQLite, opts.Driver)
	assert.Equal(t, DefaultSQLitePath, opts.Path)
	assert.Equal(t, DefaultHost, opts.Host)
	assert.Equal(t, DefaultPort, opts.Port)
	assert.Equal(t, DefaultSSLMode, opts.SSLMode)
}
