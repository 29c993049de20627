package entity

import (
	"time"

	"github.com/sangkips/shop-pos/internal/domain/enum"
)

// TransactionItem is the frozen copy of a cart line inside a completed sale
type TransactionItem struct {
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	Price             int64   `json:"price"`
	Cost              int64   `json:"cost"`
	Qty               int     `json:"qty"`
	DiscountPct       float64 `json:"discount_pct"`
	Note              string  `json:"note,omitempty"`
	Gross             int64   `json:"gross"`
	DiscountAmount    int64   `json:"discount_amount"`
	Net               int64   `json:"net"`
	AllocatedDiscount int64   `json:"allocated_discount"`
	Profit            int64   `json:"profit"`
}

// COGS returns the cost of goods sold for the line
func (i *TransactionItem) COGS() int64 {
	return i.Cost * int64(i.Qty)
}

// Transaction is an immutable record of a completed sale. It is created once
// at checkout and appended to the ledger.
type Transaction struct {
	ID                 string             `json:"id"`
	ReceiptNo          string             `json:"receipt_no"`
	Timestamp          time.Time          `json:"timestamp"`
	Items              []TransactionItem  `json:"items"`
	Subtotal           int64              `json:"subtotal"`
	ItemDiscountTotal  int64              `json:"item_discount_total"`
	OrderDiscountType  enum.DiscountType  `json:"order_discount_type"`
	OrderDiscountValue float64            `json:"order_discount_value"`
	OrderDiscountTotal int64              `json:"order_discount_total"`
	TaxableBase        int64              `json:"taxable_base"`
	TaxPct             float64            `json:"tax_pct"`
	TaxAmount          int64              `json:"tax_amount"`
	GrandTotal         int64              `json:"grand_total"`
	Paid               int64              `json:"paid"`
	Change             int64              `json:"change"`
	PaymentMethod      enum.PaymentMethod `json:"payment_method"`
	Profit             int64              `json:"profit"`
}

// DiscountTotal returns line and order discounts combined
func (t *Transaction) DiscountTotal() int64 {
	return t.ItemDiscountTotal + t.OrderDiscountTotal
}

// COGS recomputes the cost of goods sold from the items
func (t *Transaction) COGS() int64 {
	var total int64
	for i := range t.Items {
		total += t.Items[i].COGS()
	}
	return total
}

// ItemCount returns the number of units sold
func (t *Transaction) ItemCount() int {
	n := 0
	for _, item := range t.Items {
		n += item.Qty
	}
	return n
}

// StockShortfall describes a cart line that asks for more units than the
// catalog holds.
type StockShortfall struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Missing returns how many units are not in stock
func (s StockShortfall) Missing() int {
	return s.Requested - s.Available
}
