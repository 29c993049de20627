package request

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// AdjustStockRequest adds delta units to a product, or removes them when negative
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}
