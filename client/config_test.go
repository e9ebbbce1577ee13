package client_test

import (
	"context"
	"testing"
	"time"

	envconfig "github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/A2ABaseAI/A2ARegistry/client"
)

func TestLoadEnvConfigWithLookuper(t *testing.T) {
	tests := []struct {
		name         string
		envVars      map[string]string
		validateFunc func(t *testing.T, cfg *client.EnvConfig)
	}{
		{
			name:    "loads defaults when no env vars set",
			envVars: map[string]string{},
			validateFunc: func(t *testing.T, cfg *client.EnvConfig) {
				assert.Equal(t, "http://localhost:8000", cfg.RegistryURL)
				assert.Equal(t, "", cfg.ClientID)
				assert.Equal(t, "", cfg.APIKey)
				assert.Equal(t, "read write", cfg.Scope)
				assert.Equal(t, 30*time.Second, cfg.Timeout)
				assert.False(t, cfg.Debug)
			},
		},
		{
			name: "loads custom values",
			envVars: map[string]string{
				"A2A_REGISTRY_URL":  "https://registry.example.com",
				"A2A_CLIENT_ID":     "my-client",
				"A2A_CLIENT_SECRET": "my-secret",
				"A2A_SCOPE":         "read",
				"A2A_TIMEOUT":       "5s",
				"A2A_DEBUG":         "true",
			},
			validateFunc: func(t *testing.T, cfg *client.EnvConfig) {
				assert.Equal(t, "https://registry.example.com", cfg.RegistryURL)
				assert.Equal(t, "my-client", cfg.ClientID)
				assert.Equal(t, "my-secret", cfg.ClientSecret)
				assert.Equal(t, "read", cfg.Scope)
				assert.Equal(t, 5*time.Second, cfg.Timeout)
				assert.True(t, cfg.Debug)
			},
		},
		{
			name: "api key configuration",
			envVars: map[string]string{
				"A2A_API_KEY": "static-key",
			},
			validateFunc: func(t *testing.T, cfg *client.EnvConfig) {
				assert.Equal(t, "static-key", cfg.APIKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			lookuper := envconfig.MapLookuper(tt.envVars)
			cfg, err := client.LoadEnvConfigWithLookuper(ctx, lookuper)
			require.NoError(t, err, "should process config without error")
			tt.validateFunc(t, cfg)
		})
	}
}

func TestLoadEnvConfigInvalidTimeout(t *testing.T) {
	lookuper := envconfig.MapLookuper(map[string]string{"A2A_TIMEOUT": "not-a-duration"})
	_, err := client.LoadEnvConfigWithLookuper(context.Background(), lookuper)
	assert.Error(t, err)
}
