package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mybestvenue/internal/flagx"
	"github.com/dmitrijs2005/mybestvenue/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept "1m" or
// integer nanoseconds.
type JsonConfig struct {
	ListenAddr    string         `json:"listen_addr"`
	DatabaseDSN   string         `json:"database_dsn"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	OTPValidity   timex.Duration `json:"otp_validity"`
	AllowedOrigin string         `json:"allowed_origin"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays config with the file named by -c/-config. Keys missing
// from the file keep their current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.OTPValidity.Duration > 0 {
		config.OTPValidity = c.OTPValidity.Duration
	}
	if c.AllowedOrigin != "" {
		config.AllowedOrigin = c.AllowedOrigin
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	return nil
}
