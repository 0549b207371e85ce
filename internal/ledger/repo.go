package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/enums"
	"github.com/hypermart/pos-backend/pkg/errors"
)

// Filter narrows a ledger listing. Dates are day-granularity strings
// in 2006-01-02 form; both bounds are inclusive.
type Filter struct {
	From string
	To   string
	Type enums.LedgerEntryType
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.LedgerEntry) error
	GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error)
	List(ctx context.Context, filter Filter) ([]models.LedgerEntry, error)
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

func (r *repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating ledger entry for %q", entry.ItemName)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "ledger entry %d not found", id)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching ledger entry %d", id)
	}
	return &entry, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]models.LedgerEntry, error) {
	q := r.db.WithContext(ctx).Model(&models.LedgerEntry{})
	if filter.From != "" {
		q = q.Where("entry_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("entry_date <= ?", filter.To)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var entries []models.LedgerEntry
	err := q.Order("entry_date DESC, id DESC").Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing ledger entries")
	}
	return entries, nil
}
