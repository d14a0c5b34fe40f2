package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/festa/internal/services"
	"github.com/desertthunder/festa/internal/shared"
	"github.com/urfave/cli/v3"
)

const configFile = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configFile); err == nil {
		if loadedConfig, err := shared.LoadConfig(configFile); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	httpClient := &http.Client{Timeout: config.Service.Timeout()}
	collection := services.NewCollectionService(services.CollectionOpts{
		BaseURL:    config.Service.BaseURL,
		HTTPClient: httpClient,
		RateLimit:  config.Service.RateLimit,
		Logger:     logger,
	})

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: collection,
		API:     services.NewAPIService(config.Service.BaseURL, httpClient),
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "festa",
		Usage:    "Manage parties and the people attending them",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
