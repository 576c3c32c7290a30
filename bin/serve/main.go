package main

import (
	"context"
	"fmt"
	"os"

	"studio-site/cmd"
	"studio-site/pkg/config"
	"studio-site/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Configure(logging.Config{Level: cfg.LogLevel})

	if err := cmd.Serve(context.Background(), cfg); err != nil {
		l := logging.WithComponent("server")
		l.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
