package request

import "github.com/sangkips/shop-pos/internal/domain/enum"

// CheckoutRequest completes the sale of the open cart.
// ConfirmShortfall sells lines even when the stock does not cover them.
type CheckoutRequest struct {
	Paid             *int64             `json:"paid"`
	PaymentMethod    enum.PaymentMethod `json:"payment_method"`
	ConfirmShortfall bool               `json:"confirm_shortfall"`
}
