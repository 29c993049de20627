package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/logger"
	"github.com/sangkips/shop-pos/pkg/pagination"
	"github.com/sangkips/shop-pos/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CatalogService handles product-related operations
type CatalogService struct {
	store *StateStore
	log   *logrus.Logger
	now   func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *StateStore, log *logrus.Logger) *CatalogService {
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogService{store: store, log: log, now: time.Now}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Name          string `json:"name" validate:"required,max=255"`
	Category      string `json:"category" validate:"max=100"`
	SKU           string `json:"sku" validate:"max=64"`
	Price         int64  `json:"price" validate:"min=0,max=100000000000"`
	Cost          int64  `json:"cost" validate:"min=0,max=100000000000"`
	Stock         int    `json:"stock" validate:"min=0"`
	LowStockAlert int    `json:"low_stock_alert" validate:"min=0"`
	Image         string `json:"image"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Image = strings.TrimSpace(in.Image)
}

func (in *ProductInput) apply(p *entity.Product) {
	p.Name = in.Name
	p.Category = in.Category
	p.SKU = in.SKU
	p.Price = in.Price
	p.Cost = in.Cost
	p.Stock = in.Stock
	p.LowStockAlert = in.LowStockAlert
	p.Image = in.Image
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Search     string
	Category   string
	Pagination *pagination.PaginationParams
}

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var created entity.Product
	err := s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		if input.SKU != "" && skuTaken(state.Products, input.SKU, "") {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}

		now := s.now()
		created = entity.Product{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now}
		input.apply(&created)
		state.Products = append(state.Products, created)
		return []string{entity.StateKeyProducts}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"product_id": created.ID, "name": created.Name}).Info("product created")
	return &created, nil
}

// UpdateProduct replaces the editable fields of a product
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var updated entity.Product
	err := s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		idx := state.FindProduct(id)
		if idx < 0 {
			return nil, apperror.NewNotFoundError("Product")
		}
		if input.SKU != "" && skuTaken(state.Products, input.SKU, id) {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}

		p := &state.Products[idx]
		input.apply(p)
		p.UpdatedAt = s.now()
		updated = *p
		return []string{entity.StateKeyProducts}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	idx := state.FindProduct(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}
	p := state.Products[idx]
	return &p, nil
}

// ListProducts returns products sorted by name, filtered and paginated
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) (*pagination.PaginatedResult[entity.Product], error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Product, 0, len(state.Products))
	for _, p := range state.Products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if !p.Matches(filter.Search) {
			continue
		}
		matched = append(matched, p)
	}
	sortProducts(matched)

	return pagination.Slice(matched, filter.Pagination), nil
}

// Categories returns the distinct product categories in alphabetical order
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range state.Products {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, p.Category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i]) < strings.ToLower(categories[j])
	})
	return categories, nil
}

// LowStock returns products at or below their alert level, lowest stock first.
// Products without their own alert level use the shop threshold.
func (s *CatalogService) LowStock(ctx context.Context) ([]entity.Product, error) {
	state, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	low := []entity.Product{}
	for _, p := range state.Products {
		if p.IsLowStock(state.Settings.LowStockThreshold) {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low, nil
}

// DeleteProduct removes a product from the catalog. Past transactions keep
// their own copy of the product data.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		idx := state.FindProduct(id)
		if idx < 0 {
			return nil, apperror.NewNotFoundError("Product")
		}
		state.Products = append(state.Products[:idx], state.Products[idx+1:]...)
		return []string{entity.StateKeyProducts}, nil
	})
}

// AdjustStock adds delta units to a product, clamping at zero
func (s *CatalogService) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var adjusted entity.Product
	err := s.store.Update(ctx, func(state *entity.State) ([]string, error) {
		idx := state.FindProduct(id)
		if idx < 0 {
			return nil, apperror.NewNotFoundError("Product")
		}
		p := &state.Products[idx]
		p.Stock += delta
		if p.Stock < 0 {
			p.Stock = 0
		}
		p.UpdatedAt = s.now()
		adjusted = *p
		return []string{entity.StateKeyProducts}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"product_id": id, "delta": delta, "stock": adjusted.Stock}).Info("stock adjusted")
	return &adjusted, nil
}

func skuTaken(products []entity.Product, sku, exceptID string) bool {
	for _, p := range products {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

func sortProducts(products []entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
}
