package storage

import (
	"errors"
	"fmt"

	"github.com/user/house-eternal/config"
	"github.com/user/house-eternal/internal/interfaces"
)

// ErrNotFound is returned by Load when no snapshot exists under the key
var ErrNotFound = errors.New("snapshot not found")

// Open creates the snapshot store selected by the storage configuration
func Open(cfg config.StorageConfig) (interfaces.SnapshotStore, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "sqlite":
		return OpenSQLite(cfg.DSN)
	case "redis":
		return OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
