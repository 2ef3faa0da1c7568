package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is one requested line of an order. MenuItemID references a
// menu item document; Name, UnitPrice and Quantity are kept verbatim as a
// historical snapshot of what the client submitted. UnitPrice is only a
// fallback: the stored menu price wins whenever it resolves.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Customer is embedded in an order; it has no identity of its own.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Order is immutable once created. TotalAmount is always recomputed
// server-side from authoritative menu prices.
type Order struct {
	ID          string      `json:"id,omitempty"`
	Items       []OrderItem `json:"items"`
	Customer    Customer    `json:"customer"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	TableNumber *string     `json:"table_number,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
}
