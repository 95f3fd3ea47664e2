// Command server runs the Evento HTTP and gRPC APIs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Ouarghii/evento/internal/server"
	"github.com/Ouarghii/evento/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "evento:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Run(ctx)
	return nil
}
