package config

import (
	"flag"
	"os"
	"time"

	"github.com/Ouarghii/evento/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered through flagx.FilterArgs first so that flags meant
// for other components do not break parsing.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "a", "g", "s", "t")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the REST API")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "address and port of the gRPC endpoint")
	fs.StringVar(&cfg.SessionDir, "s", cfg.SessionDir, "directory for the saved session")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
