// Command kameleon is the Kameleon PRD assistant: a CLI, a terminal UI and
// an MCP server over the same signed-in session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/config/file"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/cli"
	"github.com/kameleon-labs/kameleon-cli/internal/config"
	"github.com/kameleon-labs/kameleon-cli/internal/core/services"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file in the working directory is optional.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("reading .env: %v", err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	home, err := env.HomeDir()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := services.NewSettingsService(configStore, env.Overrides())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &bootstrapper{env: env, home: home, settings: settings}
	defer b.Close()

	cli.SetSettingsService(settings)
	cli.SetBootstrap(b.Services)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}
