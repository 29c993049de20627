package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodQRIS     PaymentMethod = "qris"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Label is the human readable name printed on receipts
func (m PaymentMethod) Label() string {
	names := map[PaymentMethod]string{
		PaymentMethodCash:     "Cash",
		PaymentMethodCard:     "Card",
		PaymentMethodQRIS:     "QRIS",
		PaymentMethodTransfer: "Bank Transfer",
		PaymentMethodOther:    "Other",
	}
	if name, ok := names[m]; ok {
		return name
	}
	return "Cash"
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQRIS, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
