package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FinanceFlow"`
		Port int    `envconfig:"PORT" default:"3000"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Client holds the dashboard's view of the gateway.
	Client struct {
		GatewayURL string `envconfig:"GATEWAY_URL" default:"http://localhost:3000"`
	}

	Identity struct {
		// Supabase-style REST endpoint that validates bearer tokens.
		URL     string `envconfig:"SUPABASE_URL"`
		AnonKey string `envconfig:"SUPABASE_ANON_KEY"`
		// When set, tokens are verified locally (HS256) instead of
		// calling the provider.
		JWTSecret string `envconfig:"IDENTITY_JWT_SECRET"`
	}

	// One n8n webhook destination per action. An empty value means the
	// action is unconfigured and requests for it fail with a
	// configuration error instead of silently no-oping.
	Webhooks struct {
		GetTransactions   string `envconfig:"N8N_WEBHOOK_GET_TRANSACTIONS"`
		AddTransaction    string `envconfig:"N8N_WEBHOOK_ADD_TRANSACTION"`
		UpdateTransaction string `envconfig:"N8N_WEBHOOK_UPDATE_TRANSACTION"`
		DeleteTransaction string `envconfig:"N8N_WEBHOOK_DELETE_TRANSACTION"`
		GetStats          string `envconfig:"N8N_WEBHOOK_GET_STATS"`
		GetCategories     string `envconfig:"N8N_WEBHOOK_GET_CATEGORIES"`
		GetCategoryStats  string `envconfig:"N8N_WEBHOOK_GET_CATEGORY_STATS"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
