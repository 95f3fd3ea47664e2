package config

import (
	"encoding/json"
	"os"

	"github.com/Ouarghii/evento/internal/flagx"
	"github.com/Ouarghii/evento/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	GRPCAddr       string         `json:"grpc_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	JWTSecret      string         `json:"jwt_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	BcryptCost     int            `json:"bcrypt_cost"`
	CookieSecure   *bool          `json:"cookie_secure"`
	CORSOrigins    []string       `json:"cors_origins"`
	AdminName      string         `json:"admin_name"`
	AdminEmail     string         `json:"admin_email"`
	AdminPassword  string         `json:"admin_password"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	AMQPURL        string         `json:"amqp_url"`
	AMQPExchange   string         `json:"amqp_exchange"`
	OTLPEndpoint   string         `json:"otlp_endpoint"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`
	GinMode        string         `json:"gin_mode"`
}

// parseJson overlays the file named by -c/-config (or EVENTO_CONFIG) onto
// config. Keys that are absent from the file keep their current value.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "EVENTO_CONFIG")

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.JWTSecret, c.JWTSecret)
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	setString(&config.AdminName, c.AdminName)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.AMQPExchange, c.AMQPExchange)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.GinMode, c.GinMode)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
