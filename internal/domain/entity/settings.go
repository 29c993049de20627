package entity

// Paper widths in characters supported by the receipt renderer
var PaperWidths = []int{32, 42, 48}

// Settings holds the shop identity and checkout configuration
type Settings struct {
	ShopName          string  `json:"shop_name"`
	Address           string  `json:"address"`
	Phone             string  `json:"phone"`
	Footer            string  `json:"footer"`
	TaxPct            float64 `json:"tax_pct"`
	Currency          string  `json:"currency"`
	PaperWidth        int     `json:"paper_width"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	ManagerPINHash    string  `json:"manager_pin_hash,omitempty"`
}

// DefaultSettings returns the settings used before the shop saves its own
func DefaultSettings() Settings {
	return Settings{
		ShopName:          "My Shop",
		Footer:            "Thank you for shopping with us",
		TaxPct:            0,
		Currency:          "IDR",
		PaperWidth:        32,
		LowStockThreshold: 5,
	}
}

// HasManagerPIN reports whether back-office routes are locked
func (s *Settings) HasManagerPIN() bool {
	return s.ManagerPINHash != ""
}

// ValidPaperWidth reports whether w is a supported paper width
func ValidPaperWidth(w int) bool {
	for _, pw := range PaperWidths {
		if pw == w {
			return true
		}
	}
	return false
}
