package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeSeed(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newSeedCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

func TestSeedCmd_RequiresFlags(t *testing.T) {
	t.Setenv(adminPasswordEnv, "Sup3r-secret!")

	err := executeSeed(t, "--name", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug")
	assert.Contains(t, err.Error(), "admin-email")
}

func TestSeedCmd_RequiresPasswordFromEnv(t *testing.T) {
	t.Setenv(adminPasswordEnv, "")

	err := executeSeed(t, "--name", "Acme", "--slug", "acme", "--admin-email", "admin@acme.test")
	assert.ErrorIs(t, err, errMissingPassword)
}

func TestSeedCmd_Flags(t *testing.T) {
	cmd := newSeedCmd()

	for _, name := range []string{"name", "slug", "admin-email", "migrate"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	migrate, err := cmd.Flags().GetBool("migrate")
	require.NoError(t, err)
	assert.False(t, migrate)
}
