package response

import (
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/domain/pricing"
)

// CartResponse returns the cart together with its priced totals
type CartResponse struct {
	Cart   entity.Cart          `json:"cart"`
	Totals *pricing.OrderTotals `json:"totals,omitempty"`
}
