package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/myflix/flix/internal/services"
	"github.com/myflix/flix/internal/session"
	"github.com/myflix/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	sessionPath, err := shared.ExpandPath(config.Session.Path)
	if err != nil {
		logger.Fatalf("invalid session path: %v", err)
	}

	store, err := session.NewStore(sessionPath)
	if err != nil {
		if store == nil {
			logger.Fatalf("failed to open session store: %v", err)
		}
		// A corrupt session file degrades to logged-out, never a crash.
		logger.Warn("stored session unreadable, starting logged out", "error", err)
	}

	httpClient := &http.Client{}
	svc := services.NewMyFlixService(services.MyFlixOpts{
		BaseURL:    config.API.BaseURL,
		HTTPClient: httpClient,
		Tokens:     store,
		Logger:     logger,
		Timeout:    time.Duration(config.API.TimeoutSeconds) * time.Second,
	})
	raw := services.NewRawService(config.API.BaseURL, httpClient, store)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Service:    svc,
		Raw:        raw,
		Session:    store,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "flix",
		Usage:    "Browse the MyFlix movie catalog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
