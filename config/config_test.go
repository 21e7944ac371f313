package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogsnotify/internal/domain/entity"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"endpoints": map[string]any{
			"production": "",
		},
		"registration": map[string]any{
			"maxAttempts": 3,
		},
		"diagnostics": map[string]any{
			"settleDelay": "1s",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "ENDPOINTS_PRODUCTION", want: "endpoints.production"},
		{envKey: "REGISTRATION_MAXATTEMPTS", want: "registration.maxAttempts"},
		{envKey: "DIAGNOSTICS_SETTLEDELAY", want: "diagnostics.settleDelay"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "ogsnotify", cfg.Env.ServiceName)
	assert.Equal(t, "info", cfg.Env.Log.Level)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, 15*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "http://localhost:8080", cfg.Endpoints.Local)
	assert.NotEmpty(t, cfg.Endpoints.Production)
	assert.Equal(t, 3, cfg.Registration.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Registration.InitialDelay)
	assert.Equal(t, time.Second, cfg.Diagnostics.SettleDelay)
	assert.Equal(t, 10*time.Second, cfg.Diagnostics.PollTimeout)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Endpoints.Local = "http://127.0.0.1:9090"
	cfg.Registration.MaxAttempts = 5
	applyDefaults(cfg)

	assert.Equal(t, "http://127.0.0.1:9090", cfg.Endpoints.Local)
	assert.Equal(t, 5, cfg.Registration.MaxAttempts)
}

func TestBaseURL_PerEnvironment(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, cfg.Endpoints.Local, cfg.BaseURL(entity.EnvironmentLocal))
	assert.Equal(t, cfg.Endpoints.Production, cfg.BaseURL(entity.EnvironmentProduction))
}

func TestNew_LoadsAndValidates(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.True(t, cfg.Client.Timeout > 0)
}
