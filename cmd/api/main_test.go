package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.NotNil(t, migrate.Flags().Lookup("dir"))
}

func TestMigrateRequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("APP_ENV", "development")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	root.SilenceErrors = true

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}
