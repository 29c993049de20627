package request

// ReceiptRequest selects how a receipt is returned
type ReceiptRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=json text"`
}
