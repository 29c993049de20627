package response

import "github.com/sangkips/shop-pos/internal/domain/entity"

// SettingsResponse is the public view of the settings; the PIN hash never leaves the server
type SettingsResponse struct {
	ShopName          string  `json:"shop_name"`
	Address           string  `json:"address"`
	Phone             string  `json:"phone"`
	Footer            string  `json:"footer"`
	TaxPct            float64 `json:"tax_pct"`
	Currency          string  `json:"currency"`
	PaperWidth        int     `json:"paper_width"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	PINSet            bool    `json:"pin_set"`
}

// NewSettingsResponse builds the response from the stored settings
func NewSettingsResponse(s *entity.Settings) *SettingsResponse {
	return &SettingsResponse{
		ShopName:          s.ShopName,
		Address:           s.Address,
		Phone:             s.Phone,
		Footer:            s.Footer,
		TaxPct:            s.TaxPct,
		Currency:          s.Currency,
		PaperWidth:        s.PaperWidth,
		LowStockThreshold: s.LowStockThreshold,
		PINSet:            s.HasManagerPIN(),
	}
}
