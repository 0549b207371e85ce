package sales

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

// ListFilter narrows a sales listing by commit time. To is exclusive;
// the service layer widens day-granularity input to the following
// midnight.
type ListFilter struct {
	From time.Time
	To   time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) error
	CreateSaleItem(ctx context.Context, line *models.SaleItem) error
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error)
	List(ctx context.Context, filter ListFilter) ([]models.Sale, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(client *db.Client) Repository {
	return &repository{db: client.Gorm()}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating sale %s", sale.InvoiceNumber)
	}
	return nil
}

func (r *repository) CreateSaleItem(ctx context.Context, line *models.SaleItem) error {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating sale line for item %d", line.ItemID)
	}
	return nil
}

func (r *repository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("invoice_number = ?", invoiceNumber).
		First(&sale).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "sale %s not found", invoiceNumber)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching sale %s", invoiceNumber)
	}
	return &sale, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Sale, error) {
	q := r.db.WithContext(ctx).Model(&models.Sale{})
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date < ?", filter.To)
	}

	var sales []models.Sale
	if err := q.Order("date DESC, id DESC").Find(&sales).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing sales")
	}
	return sales, nil
}
