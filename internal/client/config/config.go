package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
	"github.com/dmitrijs2005/mybestvenue/internal/client/storage"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

// Config holds runtime settings for the MyBestVenue shell.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values
// (e.g., 10*time.Second).
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	StorageDriver       string
	SQLiteFile          string
	RedisAddr           string
	RedisPrefix         string
	LoginMode           string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.StorageDriver = storage.DriverSQLite
	c.SQLiteFile = "mybestvenue.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = ""
	c.LoginMode = string(session.LoginModeTolerate)
	c.LogLevel = "warn"
}

// Validate checks the values that can only be wrong at runtime.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case storage.DriverMemory, storage.DriverSQLite, storage.DriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if _, err := session.ParseLoginMode(c.LoginMode); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	return nil
}

// Storage turns the settings into a storage.Config.
func (c *Config) Storage() storage.Config {
	sc := storage.Config{Driver: c.StorageDriver}
	switch c.StorageDriver {
	case storage.DriverSQLite:
		sc.SQLite = &storage.SQLiteConfig{DSN: c.SQLiteFile}
	case storage.DriverRedis:
		sc.Redis = &storage.RedisConfig{Addr: c.RedisAddr, Prefix: c.RedisPrefix}
	}
	return sc
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
