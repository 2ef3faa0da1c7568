package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bbrother/cafe-api/internal/core/domain"
	"github.com/bbrother/cafe-api/internal/port"
)

var ErrInvalidRecord = errors.New("invalid record")

// CatalogService handles the pass-through persistence for menu items and
// café services. No pricing logic lives here.
type CatalogService struct {
	store  port.DocumentStore
	cache  port.CacheRepository
	logger *slog.Logger
}

func NewCatalogService(store port.DocumentStore, cache port.CacheRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, cache: cache, logger: logger}
}

func (s *CatalogService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	docs, err := s.store.FindAll(ctx, port.CollectionMenuItem)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(docs))
	for _, doc := range docs {
		var item domain.MenuItem
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			return nil, fmt.Errorf("decode menu item %s: %w", doc.ID, err)
		}
		item.ID = doc.ID.String()
		item.CreatedAt = doc.CreatedAt
		items = append(items, item)
	}
	return items, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if item.Name == "" || item.Category == "" {
		return domain.MenuItem{}, fmt.Errorf("%w: name and category are required", ErrInvalidRecord)
	}
	if item.Price < 0 {
		return domain.MenuItem{}, fmt.Errorf("%w: price must not be negative", ErrInvalidRecord)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	item.ID = ""

	body, err := json.Marshal(item)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("marshal menu item: %w", err)
	}
	saved, err := s.store.InsertOne(ctx, port.CollectionMenuItem, body)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("persist menu item: %w", err)
	}
	item.ID = saved.ID.String()
	item.CreatedAt = saved.CreatedAt

	// Warm the pricing cache so a fresh item is orderable without a store
	// round-trip.
	if s.cache != nil {
		if err := s.cache.SetMenuItem(ctx, saved.ID, saved.Data); err != nil {
			s.logger.Warn("menu cache write failed", "menu_item_id", item.ID, "error", err)
		}
	}
	return item, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	docs, err := s.store.FindAll(ctx, port.CollectionService)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	services := make([]domain.Service, 0, len(docs))
	for _, doc := range docs {
		var svc domain.Service
		if err := json.Unmarshal(doc.Data, &svc); err != nil {
			return nil, fmt.Errorf("decode service %s: %w", doc.ID, err)
		}
		svc.ID = doc.ID.String()
		svc.CreatedAt = doc.CreatedAt
		services = append(services, svc)
	}
	return services, nil
}

func (s *CatalogService) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if svc.Title == "" {
		return domain.Service{}, fmt.Errorf("%w: title is required", ErrInvalidRecord)
	}
	if svc.PriceFrom != nil && *svc.PriceFrom < 0 {
		return domain.Service{}, fmt.Errorf("%w: price_from must not be negative", ErrInvalidRecord)
	}
	svc.ID = ""

	body, err := json.Marshal(svc)
	if err != nil {
		return domain.Service{}, fmt.Errorf("marshal service: %w", err)
	}
	saved, err := s.store.InsertOne(ctx, port.CollectionService, body)
	if err != nil {
		return domain.Service{}, fmt.Errorf("persist service: %w", err)
	}
	svc.ID = saved.ID.String()
	svc.CreatedAt = saved.CreatedAt
	return svc, nil
}
