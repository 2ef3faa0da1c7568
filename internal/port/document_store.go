package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Collection names used by the café backend.
const (
	CollectionMenuItem = "menuitem"
	CollectionService  = "service"
	CollectionOrder    = "order"
)

// Document is one stored record: a JSON body plus the identity and creation
// time the store assigned to it.
type Document struct {
	ID        uuid.UUID
	Data      json.RawMessage
	CreatedAt time.Time
}

// DocumentStore is generic per-collection persistence. Implementations must
// make each call individually atomic; no multi-document transactions are
// expected by callers.
type DocumentStore interface {
	// InsertOne stores data under a new id and returns the persisted document.
	InsertOne(ctx context.Context, collection string, data []byte) (Document, error)

	// FindByID returns the document with the given id, or nil if absent.
	FindByID(ctx context.Context, collection string, id uuid.UUID) (*Document, error)

	// FindAll returns every document in the collection, oldest first.
	FindAll(ctx context.Context, collection string) ([]Document, error)
}
