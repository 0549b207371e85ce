package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key, value string) error
	// CompareAndSet updates key to next only if its current value is
	// still prev. Returns false without error when another writer got
	// there first.
	CompareAndSet(ctx context.Context, key, prev, next string) (bool, error)
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

func (r *repository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.New(errors.CodeNotFound, "setting %q not found", key)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching setting %q", key)
	}
	return &setting, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Save(&setting).Error
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving setting %q", key)
	}
	return nil
}

func (r *repository) CompareAndSet(ctx context.Context, key, prev, next string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Setting{}).
		Where("key = ? AND value = ?", key, prev).
		Update("value", next)
	if res.Error != nil {
		return false, errors.Wrap(errors.CodeInternal, res.Error, "updating setting %q", key)
	}
	return res.RowsAffected == 1, nil
}
