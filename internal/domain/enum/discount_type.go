package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType is the kind of order-level discount applied at checkout
type DiscountType string

const (
	DiscountTypeNone    DiscountType = "none"
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

func (t DiscountType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known discount types
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypeNone, DiscountTypePercent, DiscountTypeAmount:
		return true
	}
	return false
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	if t == "" {
		return json.Marshal(string(DiscountTypeNone))
	}
	return json.Marshal(string(t))
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		str = string(DiscountTypeNone)
	}
	*t = DiscountType(str)
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypeNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DiscountType(v)
	case []byte:
		*t = DiscountType(string(v))
	}
	return nil
}
