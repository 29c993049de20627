package request

import "github.com/sangkips/shop-pos/internal/domain/enum"

// AddItemRequest puts a catalog product in the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty"`
}

// UpdateItemRequest changes a cart line; omitted fields are left unchanged
type UpdateItemRequest struct {
	Qty         *int     `json:"qty"`
	DiscountPct *float64 `json:"discount_pct"`
	Note        *string  `json:"note"`
}

// OrderDiscountRequest replaces the order discount
type OrderDiscountRequest struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

// PaymentRequest records the tendered amount
type PaymentRequest struct {
	Paid          int64              `json:"paid"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}
