package kv

import (
	"context"
	"fmt"

	"github.com/tphummel/it_inventory/internal/config"
	"github.com/tphummel/it_inventory/internal/db"
)

// Open returns the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return db.New(cfg.Path)
	case "memory":
		return NewMemory(), nil
	case "nats":
		return NewNatsStore(ctx, cfg.NatsURL, cfg.Bucket)
	case "postgres":
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
