package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/internal/catalog"
	"github.com/hypermart/pos-backend/internal/ledger"
	"github.com/hypermart/pos-backend/internal/settings"
	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/enums"
	"github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
	"github.com/hypermart/pos-backend/pkg/metrics"
)

// CartLine is one item going out the door. UnitPrice is the price
// snapshot taken when the line entered the cart; the catalog price at
// commit time does not matter.
type CartLine struct {
	ItemID    int64           `json:"item_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CommitInput struct {
	Lines       []CartLine `json:"lines" validate:"required,dive"`
	TableNumber *string    `json:"table_number,omitempty"`
}

// CommitResult is what the register needs after a successful commit:
// the persisted sale and any items that just went low on stock.
type CommitResult struct {
	Sale     *models.Sale  `json:"sale"`
	LowStock []models.Item `json:"low_stock,omitempty"`
}

type Service interface {
	CommitSale(ctx context.Context, input CommitInput) (*CommitResult, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error)
	List(ctx context.Context, from, to string) ([]models.Sale, error)
}

type service struct {
	client   *db.Client
	log      *logger.Logger
	repo     Repository
	catalog  catalog.Repository
	settings settings.Service
	ledger   ledger.Service
	now      func() time.Time
}

func NewService(
	client *db.Client,
	log *logger.Logger,
	repo Repository,
	catalogRepo catalog.Repository,
	settingsSvc settings.Service,
	ledgerSvc ledger.Service,
) Service {
	return &service{
		client:   client,
		log:      log,
		repo:     repo,
		catalog:  catalogRepo,
		settings: settingsSvc,
		ledger:   ledgerSvc,
		now:      time.Now,
	}
}

// CommitSale turns a cart into a permanent sale. Everything happens in
// one transaction: the invoice number is minted, the sale and its lines
// are written, stock is decremented with an oversell guard, ledger rows
// are appended, and the invoice counter is advanced. Any failure rolls
// the whole thing back and the counter is never consumed.
func (s *service) CommitSale(ctx context.Context, input CommitInput) (*CommitResult, error) {
	if err := validateCommit(input); err != nil {
		return nil, err
	}

	var result CommitResult
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txCatalog := s.catalog.WithTx(tx)
		txSettings := s.settings.WithTx(tx)
		txLedger := s.ledger.WithTx(tx)

		counter, err := txSettings.InvoiceCounter(ctx)
		if err != nil {
			return err
		}
		invoiceNumber := settings.FormatInvoiceNumber(counter + 1)

		total := decimal.Zero
		for _, line := range input.Lines {
			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
		}

		now := s.now()
		sale := &models.Sale{
			InvoiceNumber: invoiceNumber,
			Date:          now,
			Total:         total,
			TableNumber:   input.TableNumber,
		}
		if err := txRepo.CreateSale(ctx, sale); err != nil {
			return err
		}

		entryDate := models.EntryDate(now)
		var lowStock []models.Item
		for _, line := range input.Lines {
			item, err := txCatalog.GetByID(ctx, line.ItemID)
			if err != nil {
				return err
			}

			ok, err := txCatalog.DecrementStock(ctx, item.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.CodeConflict,
					"insufficient stock for %q, have %d want %d", item.Name, item.Quantity, line.Quantity).
					WithDetails(map[string]any{"item_id": item.ID, "on_hand": item.Quantity, "requested": line.Quantity})
			}

			subtotal := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
			if err := txRepo.CreateSaleItem(ctx, &models.SaleItem{
				SaleID:    sale.ID,
				ItemID:    item.ID,
				ItemName:  item.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  subtotal,
			}); err != nil {
				return err
			}

			itemID := item.ID
			if err := txLedger.Record(ctx, &models.LedgerEntry{
				EntryDate: entryDate,
				Type:      enums.LedgerEntrySale,
				ItemID:    &itemID,
				ItemName:  item.Name,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
			}); err != nil {
				return err
			}

			// Re-read so carts holding the same item twice see the
			// running balance, not the value at tx start.
			fresh, err := txCatalog.GetByID(ctx, item.ID)
			if err != nil {
				return err
			}
			if fresh.Quantity < catalog.LowStockThreshold {
				lowStock = upsertLowStock(lowStock, *fresh)
			}
		}

		ok, err := txSettings.AdvanceInvoiceCounter(ctx, counter, counter+1)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.CodeConflict,
				"invoice counter moved during commit, retry the sale")
		}

		sale.Items = nil
		result.Sale = sale
		result.LowStock = lowStock
		return nil
	})
	if err != nil {
		metrics.SaleCommitFailures.WithLabelValues(string(errors.As(err).Code())).Inc()
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	metrics.SaleLinesCommitted.Add(float64(len(input.Lines)))
	for range result.LowStock {
		metrics.LowStockAlerts.Inc()
	}

	ctx = s.log.WithInvoice(ctx, result.Sale.InvoiceNumber)
	s.log.Info(ctx, "sale committed")
	for _, item := range result.LowStock {
		s.log.Warn(s.log.WithField(ctx, "item", item.Name), "item is low on stock")
	}
	return &result, nil
}

func (s *service) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	return s.repo.GetByInvoiceNumber(ctx, invoiceNumber)
}

func (s *service) List(ctx context.Context, from, to string) ([]models.Sale, error) {
	var filter ListFilter
	if from != "" {
		t, err := time.ParseInLocation(models.EntryDateFormat, from, time.Local)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, "invalid date %q, expected YYYY-MM-DD", from)
		}
		filter.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(models.EntryDateFormat, to, time.Local)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, "invalid date %q, expected YYYY-MM-DD", to)
		}
		filter.To = t.AddDate(0, 0, 1)
	}
	return s.repo.List(ctx, filter)
}

func upsertLowStock(list []models.Item, item models.Item) []models.Item {
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func validateCommit(input CommitInput) error {
	if len(input.Lines) == 0 {
		return errors.New(errors.CodeEmptyCart, "cart has no lines to commit")
	}
	for i, line := range input.Lines {
		if line.Quantity <= 0 {
			return errors.New(errors.CodeValidation, "line %d: quantity must be positive", i)
		}
		if line.UnitPrice.IsNegative() {
			return errors.New(errors.CodeValidation, "line %d: unit price cannot be negative", i)
		}
	}
	return nil
}
