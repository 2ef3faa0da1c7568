package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bbrother/cafe-api/internal/core/domain"
	"github.com/bbrother/cafe-api/internal/core/service"
)

const defaultOrderLimit = 20

// DependencyPinger is a named health probe for /api/status.
type DependencyPinger struct {
	Name string
	Ping func(ctx context.Context) error
}

type HTTPHandler struct {
	orders  *service.OrderService
	catalog *service.CatalogService
	deps    []DependencyPinger
	logger  *slog.Logger
}

func NewHTTPHandler(orders *service.OrderService, catalog *service.CatalogService, deps []DependencyPinger, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{orders: orders, catalog: catalog, deps: deps, logger: logger}
}

// Register wires every route onto the mux. Method matching uses the
// ServeMux method patterns, so mismatched methods get 405 for free.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/status", h.Status)
	mux.HandleFunc("GET /api/menu", h.ListMenu)
	mux.HandleFunc("POST /api/menu", h.CreateMenuItem)
	mux.HandleFunc("GET /api/services", h.ListServices)
	mux.HandleFunc("POST /api/services", h.CreateService)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
}

func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bbrother Cafe backend is running"})
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Status reports reachability of each backing dependency.
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	report := make(map[string]string, len(h.deps))
	for _, dep := range h.deps {
		if err := dep.Ping(r.Context()); err != nil {
			report[dep.Name] = "unavailable: " + err.Error()
		} else {
			report[dep.Name] = "ok"
		}
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *HTTPHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListMenu(r.Context())
	if err != nil {
		h.serverError(w, "list menu", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type CreateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
	Tags        []string `json:"tags"`
}

func (h *HTTPHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price == nil {
		errorJSON(w, http.StatusBadRequest, "price is required")
		return
	}

	item := domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Tags:        req.Tags,
	}
	created, err := h.catalog.CreateMenuItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecord) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, "create menu item", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListServices(r.Context())
	if err != nil {
		h.serverError(w, "list services", err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

type CreateServiceRequest struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Icon      string   `json:"icon"`
	PriceFrom *float64 `json:"price_from"`
	Active    *bool    `json:"active"`
}

func (h *HTTPHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := domain.Service{
		Title:     req.Title,
		Summary:   req.Summary,
		Icon:      req.Icon,
		PriceFrom: req.PriceFrom,
		Active:    req.Active == nil || *req.Active,
	}
	created, err := h.catalog.CreateService(r.Context(), svc)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecord) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, "create service", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type OrderItemRequest struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	UnitPrice  *float64 `json:"unit_price"`
	Quantity   *int     `json:"quantity"`
}

type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	Customer    domain.Customer    `json:"customer"`
	TableNumber *string            `json:"table_number"`
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.MenuItemID == "" || it.Name == "" || it.UnitPrice == nil || it.Quantity == nil {
			errorJSON(w, http.StatusBadRequest, "each item requires menu_item_id, name, unit_price and quantity")
			return
		}
		if *it.UnitPrice < 0 {
			errorJSON(w, http.StatusBadRequest, "unit_price must not be negative")
			return
		}
		items = append(items, domain.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			UnitPrice:  *it.UnitPrice,
			Quantity:   *it.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), items, req.Customer, req.TableNumber)
	if err != nil {
		if isClientError(err) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errorJSON(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	orders, err := h.orders.ListOrders(r.Context(), limit)
	if err != nil {
		h.serverError(w, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// isClientError reports whether the failure was caused by the request
// rather than by the backend.
func isClientError(err error) bool {
	return errors.Is(err, service.ErrInvalidInput) ||
		errors.Is(err, service.ErrInvalidReference) ||
		errors.Is(err, service.ErrReferenceNotFound) ||
		errors.Is(err, service.ErrInvalidQuantity)
}

// serverError hides internal detail from the client and keeps it in the log.
func (h *HTTPHandler) serverError(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action+" failed", "error", err)
	errorJSON(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
