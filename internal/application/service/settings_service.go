package service

import (
	"context"
	"strings"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sangkips/shop-pos/pkg/utils"
	"github.com/sirupsen/logrus"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	store *StateStore
	log   *logrus.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *StateStore, log *logrus.Logger) *SettingsService {
	if log == nil {
		log = logger.Discard()
	}
	return &SettingsService{store: store, log: log}
}

// GetSettings retrieves the shop settings; defaults are returned until the shop saves its own
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &state.Settings, nil
}

// UpdateSettingsInput represents the input for updating settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	ShopName          *string  `json:"shop_name" validate:"omitnil,min=1,max=100"`
	Address           *string  `json:"address" validate:"omitnil,max=255"`
	Phone             *string  `json:"phone" validate:"omitnil,max=50"`
	Footer            *string  `json:"footer" validate:"omitnil,max=255"`
	TaxPct            *float64 `json:"tax_pct" validate:"omitnil,gte=0,lte=100"`
	Currency          *string  `json:"currency" validate:"omitnil,min=1,max=10"`
	PaperWidth        *int     `json:"paper_width" validate:"omitnil,oneof=32 42 48"`
	LowStockThreshold *int     `json:"low_stock_threshold" validate:"omitnil,min=0"`
}

func (in *UpdateSettingsInput) normalize() {
	for _, f := range []*string{in.ShopName, in.Address, in.Phone, in.Footer, in.Currency} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// UpdateSettings updates the provided settings fields
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var updated entity.Settings
	err := s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		st := &state.Settings
		if input.ShopName != nil {
			st.ShopName = *input.ShopName
		}
		if input.Address != nil {
			st.Address = *input.Address
		}
		if input.Phone != nil {
			st.Phone = *input.Phone
		}
		if input.Footer != nil {
			st.Footer = *input.Footer
		}
		if input.TaxPct != nil {
			st.TaxPct = *input.TaxPct
		}
		if input.Currency != nil {
			st.Currency = strings.ToUpper(*input.Currency)
		}
		if input.PaperWidth != nil {
			st.PaperWidth = *input.PaperWidth
		}
		if input.LowStockThreshold != nil {
			st.LowStockThreshold = *input.LowStockThreshold
		}
		updated = *st
		return []string{entity.StateKeySettings}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetManagerPINInput holds the new manager PIN; empty removes the lock
type SetManagerPINInput struct {
	PIN string `json:"pin" validate:"omitempty,numeric,min=4,max=8"`
}

// SetManagerPIN stores the bcrypt hash of the manager PIN. An empty PIN
// removes it and opens the back office again.
func (s *SettingsService) SetManagerPIN(ctx context.Context, input *SetManagerPINInput) error {
	input.PIN = strings.TrimSpace(input.PIN)
	if err := validateStruct(input); err != nil {
		return err
	}

	hash := ""
	if input.PIN != "" {
		var err error
		if hash, err = utils.HashSecret(input.PIN); err != nil {
			return err
		}
	}

	err := s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		state.Settings.ManagerPINHash = hash
		return []string{entity.StateKeySettings}, nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("locked", hash != "").Info("manager PIN changed")
	return nil
}
