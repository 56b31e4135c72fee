package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mybestvenue/internal/filex"
)

// New opens the storage driver named in cfg. An empty driver means sqlite.
func New(ctx context.Context, cfg Config) (Storage, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if cfg.SQLite == nil || cfg.SQLite.DSN == "" {
			return nil, fmt.Errorf("sqlite driver requires a database file")
		}
		if err := filex.EnsureParentDir(cfg.SQLite.DSN); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, cfg.SQLite.DSN)
	case DriverRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
