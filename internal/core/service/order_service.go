package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/bbrother/cafe-api/internal/core/domain"
	"github.com/bbrother/cafe-api/internal/port"
)

var (
	ErrInvalidInput      = errors.New("invalid order input")
	ErrInvalidReference  = errors.New("invalid menu item id")
	ErrReferenceNotFound = errors.New("menu item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

type OrderService struct {
	store  port.DocumentStore
	cache  port.CacheRepository
	events port.EventPublisher
	logger *slog.Logger
}

// NewOrderService builds the order pricing service. events may be nil when
// no broker is configured.
func NewOrderService(store port.DocumentStore, cache port.CacheRepository, events port.EventPublisher, logger *slog.Logger) *OrderService {
	return &OrderService{store: store, cache: cache, events: events, logger: logger}
}

// CreateOrder validates every requested line against the menu collection,
// recomputes the total from authoritative prices and persists the order.
// Validation is all-or-nothing: nothing is written until every line has
// resolved. The submitted line items are persisted verbatim as a historical
// snapshot; only the total reflects the resolved prices.
func (s *OrderService) CreateOrder(ctx context.Context, items []domain.OrderItem, customer domain.Customer, tableNumber *string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if customer.Name == "" || customer.Phone == "" {
		return domain.Order{}, fmt.Errorf("%w: customer name and phone are required", ErrInvalidInput)
	}

	total := 0.0
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.Order{}, fmt.Errorf("%w: item %q has quantity %d", ErrInvalidQuantity, item.Name, item.Quantity)
		}

		id, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrInvalidReference, item.MenuItemID)
		}

		doc, err := s.lookupMenuItem(ctx, id)
		if err != nil {
			return domain.Order{}, fmt.Errorf("lookup menu item %s: %w", item.MenuItemID, err)
		}
		if doc == nil {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrReferenceNotFound, item.MenuItemID)
		}

		// Prefer the stored price whenever it resolves to a number; the
		// client-claimed unit price only covers legacy menu documents
		// with a missing or malformed price field.
		price, ok := authoritativePrice(doc)
		if !ok {
			price = item.UnitPrice
		}
		total += price * float64(item.Quantity)
	}

	order := domain.Order{
		Items:       items,
		Customer:    customer,
		Status:      domain.OrderStatusPending,
		TotalAmount: round2(total),
		TableNumber: tableNumber,
	}

	body, err := json.Marshal(order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal order: %w", err)
	}

	saved, err := s.store.InsertOne(ctx, port.CollectionOrder, body)
	if err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	order.ID = saved.ID.String()
	order.CreatedAt = saved.CreatedAt

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Warn("order created event not published", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}

// ListOrders returns orders newest first. limit 0 means no truncation.
func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	docs, err := s.store.FindAll(ctx, port.CollectionOrder)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		var order domain.Order
		if err := json.Unmarshal(doc.Data, &order); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", doc.ID, err)
		}
		order.ID = doc.ID.String()
		order.CreatedAt = doc.CreatedAt
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// lookupMenuItem reads through the cache. Cache failures degrade to a plain
// store read so a Redis outage never blocks ordering.
func (s *OrderService) lookupMenuItem(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.cache != nil {
		data, ok, err := s.cache.GetMenuItem(ctx, id)
		if err != nil {
			s.logger.Warn("menu cache read failed", "menu_item_id", id.String(), "error", err)
		} else if ok {
			return data, nil
		}
	}

	doc, err := s.store.FindByID(ctx, port.CollectionMenuItem, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetMenuItem(ctx, id, doc.Data); err != nil {
			s.logger.Warn("menu cache write failed", "menu_item_id", id.String(), "error", err)
		}
	}
	return doc.Data, nil
}

// authoritativePrice extracts the price field from a stored menu item
// document. Legacy documents may carry the price as a quoted string or omit
// it entirely; ok is false when no numeric price can be resolved.
func authoritativePrice(data []byte) (float64, bool) {
	var probe struct {
		Price any `json:"price"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, false
	}
	switch v := probe.Price.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
