package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bbrother/cafe-api/internal/core/domain"
)

func TestCreateMenuItem_RoundTrip(t *testing.T) {
	store := newMockDocumentStore()
	cache := newMockCacheRepo()
	svc := NewCatalogService(store, cache, testLogger())

	created, err := svc.CreateMenuItem(context.Background(), domain.MenuItem{
		Name:        "Flat White",
		Price:       3.80,
		Category:    "Coffee",
		IsAvailable: true,
		Tags:        []string{"hot"},
	})
	if err != nil {
		t.Fatalf("CreateMenuItem failed: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Error("expected store-assigned id and timestamp")
	}

	items, err := svc.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("ListMenu failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Flat White" || items[0].Price != 3.80 {
		t.Errorf("unexpected menu listing: %+v", items)
	}

	// The new item must be orderable straight from the cache.
	id, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("id is not a uuid: %v", err)
	}
	if _, ok, _ := cache.GetMenuItem(context.Background(), id); !ok {
		t.Error("expected created item to be cached")
	}
}

func TestCreateMenuItem_Invalid(t *testing.T) {
	svc := NewCatalogService(newMockDocumentStore(), newMockCacheRepo(), testLogger())

	_, err := svc.CreateMenuItem(context.Background(), domain.MenuItem{Price: 1, Category: "Coffee"})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("missing name: expected ErrInvalidRecord, got %v", err)
	}

	_, err = svc.CreateMenuItem(context.Background(), domain.MenuItem{Name: "Latte", Category: "Coffee", Price: -1})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("negative price: expected ErrInvalidRecord, got %v", err)
	}
}

func TestCreateService_RoundTrip(t *testing.T) {
	store := newMockDocumentStore()
	svc := NewCatalogService(store, newMockCacheRepo(), testLogger())

	from := 50.0
	created, err := svc.CreateService(context.Background(), domain.Service{
		Title:     "Catering",
		Summary:   "Events up to 40 guests",
		PriceFrom: &from,
		Active:    true,
	})
	if err != nil {
		t.Fatalf("CreateService failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected store-assigned id")
	}

	services, err := svc.ListServices(context.Background())
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(services) != 1 || services[0].Title != "Catering" {
		t.Errorf("unexpected services listing: %+v", services)
	}
	if services[0].PriceFrom == nil || *services[0].PriceFrom != 50.0 {
		t.Errorf("expected price_from 50.0, got %v", services[0].PriceFrom)
	}
}

func TestCreateService_Invalid(t *testing.T) {
	svc := NewCatalogService(newMockDocumentStore(), newMockCacheRepo(), testLogger())

	_, err := svc.CreateService(context.Background(), domain.Service{})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("missing title: expected ErrInvalidRecord, got %v", err)
	}

	bad := -5.0
	_, err = svc.CreateService(context.Background(), domain.Service{Title: "Catering", PriceFrom: &bad})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("negative price_from: expected ErrInvalidRecord, got %v", err)
	}
}
