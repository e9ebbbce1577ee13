package client

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
)

// EnvConfig holds the environment-driven client configuration.
type EnvConfig struct {
	RegistryURL  string        `env:"A2A_REGISTRY_URL,default=http://localhost:8000" description:"Base URL of the A2A registry"`
	ClientID     string        `env:"A2A_CLIENT_ID" description:"OAuth2 client ID for the client-credentials flow"`
	ClientSecret string        `env:"A2A_CLIENT_SECRET" description:"OAuth2 client secret"`
	APIKey       string        `env:"A2A_API_KEY" description:"Static API key; takes priority over OAuth2 credentials"`
	Scope        string        `env:"A2A_SCOPE,default=read write" description:"OAuth2 scope requested during authentication"`
	Timeout      time.Duration `env:"A2A_TIMEOUT,default=30s" description:"Per-call request timeout"`
	Debug        bool          `env:"A2A_DEBUG,default=false" description:"Enable debug logging"`
}

// LoadEnvConfig reads the client configuration from the environment.
func LoadEnvConfig(ctx context.Context) (*EnvConfig, error) {
	return LoadEnvConfigWithLookuper(ctx, envconfig.OsLookuper())
}

// LoadEnvConfigWithLookuper reads the client configuration through the
// given lookuper, which lets tests inject variables without touching the
// process environment.
func LoadEnvConfigWithLookuper(ctx context.Context, lookuper envconfig.Lookuper) (*EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// NewClientFromEnv builds a client from environment variables. With
// A2A_DEBUG set it logs through a zap development logger, otherwise
// logging is disabled.
func NewClientFromEnv(ctx context.Context) (*Client, error) {
	cfg, err := LoadEnvConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	config := DefaultConfig(cfg.RegistryURL)
	config.ClientID = cfg.ClientID
	config.ClientSecret = cfg.ClientSecret
	config.APIKey = cfg.APIKey
	config.Scope = cfg.Scope
	config.Timeout = cfg.Timeout
	config.Logger = logger

	return NewClientWithConfig(config), nil
}
