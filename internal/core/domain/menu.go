package domain

import "time"

// MenuItem is the authoritative record for a café menu item. Its Price is
// the source of truth when orders are priced.
type MenuItem struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Service is a non-menu offering of the café (catering, workspace, events).
type Service struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	PriceFrom *float64  `json:"price_from,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
