package receipts

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
)

func testStore() config.StoreConfig {
	return config.StoreConfig{
		Name:    "HD Super Mart",
		Address: "12505 Bel Red Road, Ste 212, Bellevue, WA 98005",
		Phone:   "(425) 389 0173",
	}
}

func testSale() *models.Sale {
	return &models.Sale{
		ID:            1,
		InvoiceNumber: "HYP-10001",
		Date:          time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("1080.00"),
		Items: []models.SaleItem{
			{ItemName: "Basmati Rice 5kg", Quantity: 2, UnitPrice: decimal.RequireFromString("450.00"), Subtotal: decimal.RequireFromString("900.00")},
			{ItemName: "Sunflower Oil 1L", Quantity: 1, UnitPrice: decimal.RequireFromString("180.00"), Subtotal: decimal.RequireFromString("180.00")},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	gen := NewGenerator(testStore())

	data, err := gen.Render(context.Background(), testSale())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderRejectsEmptySale(t *testing.T) {
	gen := NewGenerator(testStore())

	_, err := gen.Render(context.Background(), &models.Sale{InvoiceNumber: "HYP-10001"})
	require.Error(t, err)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeValidation, appErr.Code())

	_, err = gen.Render(context.Background(), nil)
	require.Error(t, err)
}
