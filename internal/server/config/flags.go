package config

import (
	"flag"
	"os"
	"time"

	"github.com/Ouarghii/evento/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   database DSN (postgres://... or memory://)
//	-s string   JWT HMAC secret
//	-t int      token validity, minutes
//	-l string   log level
//
// os.Args is filtered first so flags owned by other layers (-c) do not
// trip the parser.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "a", "g", "d", "s", "t", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
	return nil
}
