// Command cli is the interactive operator console for Evento.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Ouarghii/evento/internal/client/cli"
	"github.com/Ouarghii/evento/internal/client/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "evento-cli:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app.Run(ctx)
	return nil
}
