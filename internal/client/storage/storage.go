// Package storage is the durable key→string surface behind the session
// channels. Each channel occupies two keys (<role>Token and <role>), and they
// are always written and removed together, so every driver applies a
// multi-key Set or Remove atomically.
package storage

import (
	"context"
	"time"
)

// Storage is implemented by the memory, sqlite and redis drivers.
type Storage interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes all entries in one atomic step.
	Set(ctx context.Context, entries map[string]string) error
	// Remove deletes all keys in one atomic step. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error
	// Replace deletes remove and then writes entries, all in one atomic step.
	// Either both happen or neither does.
	Replace(ctx context.Context, entries map[string]string, remove []string) error
	Close() error
}

// Driver identifiers accepted by New.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config selects and tunes a driver.
type Config struct {
	Driver string
	SQLite *SQLiteConfig
	Redis  *RedisConfig
}

// SQLiteConfig points at the database file (or ":memory:").
type SQLiteConfig struct {
	DSN string
}

// RedisConfig captures connection options. Prefix namespaces every key so
// several shells can share one server.
type RedisConfig struct {
	Addr        string
	Username    string
	Password    string
	DB          int
	Prefix      string
	DialTimeout time.Duration
}
