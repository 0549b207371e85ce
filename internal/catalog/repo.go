package catalog

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	// IncrementStock adds qty to the item's on-hand quantity.
	IncrementStock(ctx context.Context, id int64, qty int64) error
	// DecrementStock subtracts qty but refuses to go negative. A false
	// return means on-hand stock was below qty.
	DecrementStock(ctx context.Context, id int64, qty int64) (bool, error)
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

func (r *repository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating item %q", item.Barcode)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return errors.Wrap(errors.CodeInternal, err, "updating item %d", item.ID)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "deleting item %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "item %d not found", id)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "item %d not found", id)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching item %d", id)
	}
	return &item, nil
}

func (r *repository) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&item).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "item with barcode %q not found", barcode)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching item by barcode %q", barcode)
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing items")
	}
	return items, nil
}

// Search matches an exact barcode, a name substring, or a numeric id,
// in that order of intent. A cashier types whatever end of the label
// they can read.
func (r *repository) Search(ctx context.Context, term string) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Where("barcode = ?", term).Or("name LIKE ?", "%"+term+"%")
	if id, err := strconv.ParseInt(term, 10, 64); err == nil {
		q = q.Or("id = ?", id)
	}

	var items []models.Item
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "searching items for %q", term)
	}
	return items, nil
}

func (r *repository) IncrementStock(ctx context.Context, id int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return errors.Wrap(errors.CodeInternal, res.Error, "incrementing stock for item %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "item %d not found", id)
	}
	return nil
}

func (r *repository) DecrementStock(ctx context.Context, id int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, errors.Wrap(errors.CodeInternal, res.Error, "decrementing stock for item %d", id)
	}
	return res.RowsAffected == 1, nil
}
