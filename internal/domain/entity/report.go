package entity

import (
	"time"

	"github.com/sangkips/shop-pos/internal/domain/enum"
)

// SalesSummary aggregates the ledger over a report range
type SalesSummary struct {
	Range    enum.ReportRange `json:"range"`
	Start    time.Time        `json:"start"`
	Revenue  int64            `json:"revenue"`
	Tax      int64            `json:"tax"`
	Discount int64            `json:"discount"`
	COGS     int64            `json:"cogs"`
	Profit   int64            `json:"profit"`
	Count    int              `json:"count"`
}

// TopProduct is a best seller within a report range
type TopProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	Revenue   int64  `json:"revenue"`
}

// DailySales is one day of the revenue series
type DailySales struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Profit  int64  `json:"profit"`
	Count   int    `json:"count"`
}

// SalesReport is the full report returned by the reporting endpoint
type SalesReport struct {
	Summary     SalesSummary `json:"summary"`
	TopProducts []TopProduct `json:"top_products"`
	Daily       []DailySales `json:"daily"`
}
