package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithEnvOverride(t *testing.T) {
	t.Setenv("OMS_LISTEN", ":9090")
	t.Setenv("OMS_AUTH_TOKEN_SECRET", "s3cr3t")
	t.Setenv("OMS_IDENTITY_MODE", "local")
	t.Setenv("OMS_DATABASE_DSN", "postgres://localhost/oms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "s3cr3t", cfg.Auth.TokenSecret)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
}

func TestValidateRejectsLocalModeWithoutSecret(t *testing.T) {
	cfg := defaults()
	cfg.Identity.Mode = "local"
	cfg.Auth.TokenSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownIdentityMode(t *testing.T) {
	cfg := defaults()
	cfg.Identity.Mode = "saml"
	assert.Error(t, cfg.Validate())
}

func TestValidateRemoteModeRequiresBaseURL(t *testing.T) {
	cfg := defaults()
	cfg.DatabaseDSN = "postgres://localhost/oms"
	cfg.Identity.Mode = "remote"
	require.Error(t, cfg.Validate())

	cfg.Identity.BaseURL = "https://auth.example.com"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresDatabaseDSN(t *testing.T) {
	cfg := defaults()
	cfg.Auth.TokenSecret = "s3cr3t"
	assert.Error(t, cfg.Validate())
}
