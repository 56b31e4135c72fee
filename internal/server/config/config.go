// Package config handles configuration for the development auth server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of issued tokens.
//   - OTPValidity: how long a signup code stays usable.
//   - AllowedOrigin: CORS origin allowed to call the API ("*" for any).
//   - LogLevel: minimum level written to stdout.
type Config struct {
	ListenAddr    string
	DatabaseDSN   string
	SecretKey     string
	TokenValidity time.Duration
	OTPValidity   time.Duration
	AllowedOrigin string
	LogLevel      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 60 * time.Minute
	c.OTPValidity = 10 * time.Minute
	c.AllowedOrigin = "*"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
