package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      int64   `json:"unit_price"`
	DiscountPct    float64 `json:"discount_pct,omitempty"`
	DiscountAmount int64   `json:"discount_amount,omitempty"`
	Total          int64   `json:"total"`
	Note           string  `json:"note,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is not persisted; it is composed from a transaction and the settings at print time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNo     string        `json:"receipt_no"`
	Date          string        `json:"date"`
	PaymentMethod string        `json:"payment_method"`
	Currency      string        `json:"currency,omitempty"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      int64         `json:"sub_total"`
	ItemDiscount  int64         `json:"item_discount"`
	OrderDiscount int64         `json:"order_discount"`
	DiscountLabel string        `json:"discount_label,omitempty"`
	TaxableBase   int64         `json:"taxable_base"`
	TaxPct        float64       `json:"tax_pct"`
	Tax           int64         `json:"tax"`
	Total         int64         `json:"total"`
	Paid          int64         `json:"paid"`
	Change        int64         `json:"change"`
	Footer        string        `json:"footer,omitempty"`
	Width         int           `json:"width"`
}
