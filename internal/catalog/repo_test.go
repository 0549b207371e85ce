package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

func setupDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`
		CREATE TABLE items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			barcode TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			quantity INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`).Error)

	return db.NewWithGorm(gdb)
}

func seedItem(t *testing.T, client *db.Client, barcode, name string, price string, qty int64) *models.Item {
	t.Helper()
	item := &models.Item{
		Barcode:  barcode,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
	require.NoError(t, client.Gorm().Create(item).Error)
	return item
}

func TestRepositoryGetByBarcode(t *testing.T) {
	client := setupDB(t)
	repo := NewRepository(client)
	ctx := context.Background()
	seeded := seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 25)

	item, err := repo.GetByBarcode(ctx, "8901030")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, item.ID)
	assert.Equal(t, "Basmati Rice 5kg", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("450.00")))

	_, err = repo.GetByBarcode(ctx, "0000000")
	require.Error(t, err)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotFound, appErr.Code())
}

func TestRepositorySearch(t *testing.T) {
	client := setupDB(t)
	repo := NewRepository(client)
	ctx := context.Background()
	rice := seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 25)
	seedItem(t, client, "8901031", "Sunflower Oil 1L", "180.00", 12)

	// Exact barcode.
	items, err := repo.Search(ctx, "8901030")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rice.ID, items[0].ID)

	// Name substring, case follows LIKE semantics.
	items, err = repo.Search(ctx, "Rice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Basmati Rice 5kg", items[0].Name)

	// Numeric id.
	items, err = repo.Search(ctx, fmt.Sprintf("%d", rice.ID))
	require.NoError(t, err)
	require.NotEmpty(t, items)

	items, err = repo.Search(ctx, "no-such-thing")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepositoryDecrementStockGuards(t *testing.T) {
	client := setupDB(t)
	repo := NewRepository(client)
	ctx := context.Background()
	item := seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 5)

	ok, err := repo.DecrementStock(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only 2 left, a decrement of 3 must refuse and leave stock alone.
	ok, err = repo.DecrementStock(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Quantity)
}

func TestRepositoryIncrementStock(t *testing.T) {
	client := setupDB(t)
	repo := NewRepository(client)
	ctx := context.Background()
	item := seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 5)

	require.NoError(t, repo.IncrementStock(ctx, item.ID, 20))
	fresh, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), fresh.Quantity)

	err = repo.IncrementStock(ctx, 9999, 1)
	require.Error(t, err)
}

func TestServiceCreateRejectsDuplicateBarcode(t *testing.T) {
	client := setupDB(t)
	svc := NewService(NewRepository(client))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateItemInput{
		Barcode:  "8901030",
		Name:     "Basmati Rice 5kg",
		Price:    decimal.RequireFromString("450.00"),
		Quantity: 25,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateItemInput{
		Barcode: "8901030",
		Name:    "Duplicate",
	})
	require.Error(t, err)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeConflict, appErr.Code())
}

func TestServiceUpdatePartialFields(t *testing.T) {
	client := setupDB(t)
	svc := NewService(NewRepository(client))
	ctx := context.Background()
	item := seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 25)

	newPrice := decimal.RequireFromString("475.00")
	updated, err := svc.Update(ctx, item.ID, UpdateItemInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice 5kg", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, int64(25), updated.Quantity)
}

func TestServiceLowStock(t *testing.T) {
	client := setupDB(t)
	svc := NewService(NewRepository(client))
	ctx := context.Background()
	seedItem(t, client, "8901030", "Basmati Rice 5kg", "450.00", 9)
	seedItem(t, client, "8901031", "Sunflower Oil 1L", "180.00", 10)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Basmati Rice 5kg", low[0].Name)
}
