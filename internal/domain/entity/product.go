package entity

import (
	"strings"
	"time"
)

// Product represents a sellable item in the shop catalog.
// Prices are stored in the smallest currency unit.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	SKU           string    `json:"sku,omitempty"`
	Price         int64     `json:"price"`
	Cost          int64     `json:"cost"`
	Stock         int       `json:"stock"`
	LowStockAlert int       `json:"low_stock_alert,omitempty"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Margin returns the gross margin of a single unit
func (p *Product) Margin() int64 {
	return p.Price - p.Cost
}

// IsLowStock reports whether the product is at or below its alert level.
// fallback is used when the product has no alert level of its own.
func (p *Product) IsLowStock(fallback int) bool {
	alert := p.LowStockAlert
	if alert <= 0 {
		alert = fallback
	}
	return p.Stock <= alert
}

// DecrementStock removes qty units, clamping at zero.
// It returns the number of units that were missing.
func (p *Product) DecrementStock(qty int) int {
	if qty <= p.Stock {
		p.Stock -= qty
		return 0
	}
	missing := qty - p.Stock
	p.Stock = 0
	return missing
}

// Matches reports whether the product name, sku or category contains q
func (p *Product) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.SKU), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
