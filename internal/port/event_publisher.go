package port

import (
	"context"

	"github.com/bbrother/cafe-api/internal/core/domain"
)

// EventPublisher announces domain events to interested consumers (kitchen
// displays, notification services). Publishing is best effort: a failed
// publish must never fail the operation that produced the event.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}
