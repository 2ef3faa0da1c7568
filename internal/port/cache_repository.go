package port

import (
	"context"

	"github.com/google/uuid"
)

type CacheRepository interface {
	// GetMenuItem returns the cached document body for a menu item, with
	// ok=false on a miss.
	GetMenuItem(ctx context.Context, id uuid.UUID) ([]byte, bool, error)

	// SetMenuItem caches a menu item document body.
	SetMenuItem(ctx context.Context, id uuid.UUID, data []byte) error

	// DeleteMenuItem drops a menu item from the cache.
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}
