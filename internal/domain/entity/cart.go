package entity

import "github.com/sangkips/shop-pos/internal/domain/enum"

// LineItem is a single row in the cart. Product data is copied in when the
// line is added so later catalog edits do not change an open sale.
type LineItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Cost        int64   `json:"cost"`
	Qty         int     `json:"qty"`
	DiscountPct float64 `json:"discount_pct"`
	Note        string  `json:"note,omitempty"`
}

// OrderDiscount is a discount on the whole order, either a percentage of the
// subtotal or a fixed amount.
type OrderDiscount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

// NoDiscount is the zero order discount
func NoDiscount() OrderDiscount {
	return OrderDiscount{Type: enum.DiscountTypeNone}
}

// Cart is the open sale on the register
type Cart struct {
	Items         []LineItem         `json:"items"`
	OrderDiscount OrderDiscount      `json:"order_discount"`
	Paid          int64              `json:"paid"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}

// NewCart returns an empty cart paid in cash
func NewCart() *Cart {
	return &Cart{
		Items:         []LineItem{},
		OrderDiscount: NoDiscount(),
		PaymentMethod: enum.PaymentMethodCash,
	}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Reset clears lines, discount and payment
func (c *Cart) Reset() {
	c.Items = []LineItem{}
	c.OrderDiscount = NoDiscount()
	c.Paid = 0
	c.PaymentMethod = enum.PaymentMethodCash
}

// FindLine returns the index of the line with the given id, or -1
func (c *Cart) FindLine(lineID string) int {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart
func (c *Cart) Clone() Cart {
	out := *c
	out.Items = append([]LineItem(nil), c.Items...)
	if out.Items == nil {
		out.Items = []LineItem{}
	}
	return out
}
