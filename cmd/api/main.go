package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/config"
	"github.com/financeflow-app/financeflow/internal/forward"
	gatewayHttp "github.com/financeflow-app/financeflow/internal/http"
	"github.com/financeflow-app/financeflow/internal/http/proxy"
	"github.com/financeflow-app/financeflow/internal/identity"
)

func main() {
	// Local development convenience; in deployment the environment is
	// injected and no .env file exists.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var validator identity.Validator
	if cfg.Identity.JWTSecret != "" {
		validator = identity.NewSecretValidator(cfg.Identity.JWTSecret)
		slog.Info("token validation mode", "mode", "local-secret")
	} else {
		validator = identity.NewProviderValidator(cfg.Identity.URL, cfg.Identity.AnonKey, cfg.Server.Timeout)
		slog.Info("token validation mode", "mode", "provider")
	}

	var (
		resolver  = action.NewResolver(cfg)
		forwarder = forward.New(cfg.Server.Timeout)
		proxyH    = proxy.NewHandler(resolver, forwarder, cfg.App.Name)
	)

	router := gatewayHttp.New(validator, proxyH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting gateway", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
