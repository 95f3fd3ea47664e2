// Command admin-init seeds the bootstrap admin account and exits. It is
// safe to run repeatedly.
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
		fmt.Fprintln(os.Stderr, "admin-init:", err)
		os.Exit(1)
	}
	fmt.Println("admin init completed")
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

	return app.SeedAdmin(ctx)
}
