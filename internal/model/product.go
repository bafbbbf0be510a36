package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents the products table, scoped to a tenant.
type Product struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Price formats the price in major units for templates, e.g. "S/ 49.90".
func (p *Product) Price() float64 {
	return float64(p.PriceCents) / 100
}
