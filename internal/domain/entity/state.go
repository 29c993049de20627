package entity

import "time"

// Keys of the persisted state records
const (
	StateKeyProducts     = "products"
	StateKeyTransactions = "transactions"
	StateKeySettings     = "settings"
)

// StateKeys lists every record key in save order
var StateKeys = []string{StateKeyProducts, StateKeyTransactions, StateKeySettings}

// StateRecord is one key/value row holding a JSON encoded slice of the shop state
type StateRecord struct {
	Key       string    `gorm:"primaryKey;size:32" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the StateRecord model
func (StateRecord) TableName() string {
	return "state_records"
}

// State is the whole persisted shop: catalog, ledger and settings
type State struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Settings     Settings      `json:"settings"`
}

// NewState returns an empty shop with default settings
func NewState() *State {
	return &State{
		Products:     []Product{},
		Transactions: []Transaction{},
		Settings:     DefaultSettings(),
	}
}

// Clone returns a copy whose slices can be modified independently
func (s *State) Clone() *State {
	out := &State{
		Products:     append([]Product{}, s.Products...),
		Transactions: append([]Transaction{}, s.Transactions...),
		Settings:     s.Settings,
	}
	return out
}

// FindProduct returns the index of the product with the given id, or -1
func (s *State) FindProduct(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}
