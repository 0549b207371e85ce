package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

// LowStockThreshold is the on-hand quantity below which an item is
// flagged for reorder.
const LowStockThreshold = 10

type CreateItemInput struct {
	Barcode  string          `json:"barcode" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
}

type UpdateItemInput struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int64           `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type Service interface {
	WithTx(tx *gorm.DB) Service
	Create(ctx context.Context, input CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, id int64, input UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	LowStock(ctx context.Context) ([]models.Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, errors.New(errors.CodeValidation, "barcode is required")
	}
	if input.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "price cannot be negative")
	}
	if _, err := s.repo.GetByBarcode(ctx, barcode); err == nil {
		return nil, errors.New(errors.CodeConflict, "barcode %q already exists", barcode)
	}

	item := &models.Item{
		Barcode:  barcode,
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateItemInput) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.New(errors.CodeValidation, "price cannot be negative")
		}
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.New(errors.CodeValidation, "quantity cannot be negative")
		}
		item.Quantity = *input.Quantity
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	return s.repo.GetByBarcode(ctx, barcode)
}

func (s *service) List(ctx context.Context) ([]models.Item, error) {
	return s.repo.List(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]models.Item, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, term)
}

func (s *service) LowStock(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]models.Item, 0)
	for _, item := range items {
		if item.Quantity < LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}
