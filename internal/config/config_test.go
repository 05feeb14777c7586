package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigLoadsFromEnv(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "memory")
	t.Setenv("JWT_SECRET", "env-secret")
	AppConfig = nil

	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)

	// Defaults applied on top of env values.
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 60, cfg.JWT.TTL)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "GetiCardUsers", cfg.Database.UsersTable)

	// A second call returns the loaded config without re-reading env.
	assert.Same(t, cfg, GetConfig())
}
