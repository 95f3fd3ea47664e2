package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment key, e.g. EVENTO_JWT_SECRET.
const EnvPrefix = "EVENTO"

// dotEnvFile is read before the environment when it exists. Variables
// already set in the process environment win over the file.
var dotEnvFile = ".env"

func parseEnv(config *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return envconfig.Process(EnvPrefix, config)
}
