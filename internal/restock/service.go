package restock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/internal/catalog"
	"github.com/hypermart/pos-backend/internal/ledger"
	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/enums"
	"github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
	"github.com/hypermart/pos-backend/pkg/metrics"
)

// Input describes one incoming delivery. Name and Price are optional
// overrides; when absent an existing item keeps what it has, and a new
// item falls back to the barcode as its name and zero as its price
// until someone edits it.
type Input struct {
	Barcode  string           `json:"barcode" validate:"required"`
	Quantity int64            `json:"quantity" validate:"required,gt=0"`
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// Result reports whether the barcode was already known and the item's
// state after the restock.
type Result struct {
	Item    *models.Item `json:"item"`
	Created bool         `json:"created"`
}

type Service interface {
	Restock(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	client  *db.Client
	log     *logger.Logger
	catalog catalog.Repository
	ledger  ledger.Service
	now     func() time.Time
}

func NewService(client *db.Client, log *logger.Logger, catalogRepo catalog.Repository, ledgerSvc ledger.Service) Service {
	return &service{
		client:  client,
		log:     log,
		catalog: catalogRepo,
		ledger:  ledgerSvc,
		now:     time.Now,
	}
}

// Restock takes a delivery into stock and appends the matching Purchase
// row to the ledger, both in one transaction.
func (s *service) Restock(ctx context.Context, input Input) (*Result, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, errors.New(errors.CodeValidation, "barcode is required")
	}
	if input.Quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "price cannot be negative")
	}

	var result Result
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txCatalog := s.catalog.WithTx(tx)
		txLedger := s.ledger.WithTx(tx)

		item, err := txCatalog.GetByBarcode(ctx, barcode)
		switch {
		case err == nil:
			if input.Name != nil {
				item.Name = strings.TrimSpace(*input.Name)
			}
			if input.Price != nil {
				item.Price = *input.Price
			}
			item.Quantity += input.Quantity
			if err := txCatalog.Update(ctx, item); err != nil {
				return err
			}
		case errors.As(err) != nil && errors.As(err).Code() == errors.CodeNotFound:
			item = &models.Item{
				Barcode:  barcode,
				Name:     barcode,
				Price:    decimal.Zero,
				Quantity: input.Quantity,
			}
			if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
				item.Name = strings.TrimSpace(*input.Name)
			}
			if input.Price != nil {
				item.Price = *input.Price
			}
			if err := txCatalog.Create(ctx, item); err != nil {
				return err
			}
			result.Created = true
		default:
			return err
		}

		itemID := item.ID
		if err := txLedger.Record(ctx, &models.LedgerEntry{
			EntryDate: models.EntryDate(s.now()),
			Type:      enums.LedgerEntryPurchase,
			ItemID:    &itemID,
			ItemName:  item.Name,
			Quantity:  input.Quantity,
			Price:     item.Price,
			Notes:     input.Notes,
		}); err != nil {
			return err
		}

		result.Item = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RestocksRecorded.Inc()
	s.log.Info(s.log.WithField(ctx, "barcode", barcode), "restock recorded")
	return &result, nil
}
