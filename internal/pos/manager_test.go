package pos

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypermart/pos-backend/internal/sales"
	"github.com/hypermart/pos-backend/pkg/db/models"
	"github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
)

type stubCatalog struct {
	items map[string]*models.Item
}

func (s *stubCatalog) GetByBarcode(_ context.Context, barcode string) (*models.Item, error) {
	if item, ok := s.items[barcode]; ok {
		return item, nil
	}
	return nil, errors.New(errors.CodeNotFound, "item with barcode %q not found", barcode)
}

func (s *stubCatalog) Search(_ context.Context, term string) ([]models.Item, error) {
	var matches []models.Item
	for _, item := range s.items {
		if item.Name == term {
			matches = append(matches, *item)
		}
	}
	return matches, nil
}

type stubSales struct {
	committed []sales.CommitInput
	err       error
}

func (s *stubSales) CommitSale(_ context.Context, input sales.CommitInput) (*sales.CommitResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.committed = append(s.committed, input)
	return &sales.CommitResult{Sale: &models.Sale{InvoiceNumber: "HYP-10001"}}, nil
}

func newTestManager(t *testing.T) (*Manager, *stubCatalog, *stubSales) {
	t.Helper()
	cat := &stubCatalog{items: map[string]*models.Item{
		"8901030": {ID: 1, Barcode: "8901030", Name: "Basmati Rice 5kg", Price: decimal.RequireFromString("450.00"), Quantity: 50},
		"8901031": {ID: 2, Barcode: "8901031", Name: "Sunflower Oil 1L", Price: decimal.RequireFromString("180.00"), Quantity: 30},
	}}
	sal := &stubSales{}
	log := logger.New(logger.Options{ServiceName: "pos-test", Output: io.Discard})
	return NewManager(log, cat, sal), cat, sal
}

func TestManagerAddMergesDuplicateLines(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	cart, err := m.AddItem(ctx, cart.SessionID, "8901030", 1)
	require.NoError(t, err)
	cart, err = m.AddItem(ctx, cart.SessionID, "8901030", 2)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(3), cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("1350.00")))
}

func TestManagerAddFallsBackToNameSearch(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	cart, err := m.AddItem(ctx, cart.SessionID, "Sunflower Oil 1L", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "8901031", cart.Lines[0].Barcode)
}

func TestManagerAddUnknownTerm(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	_, err := m.AddItem(ctx, cart.SessionID, "nothing", 1)
	require.Error(t, err)
	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeNotFound, appErr.Code())
}

func TestManagerUpdateQuantityAndRemove(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	cart, err := m.AddItem(ctx, cart.SessionID, "8901030", 2)
	require.NoError(t, err)

	cart, err = m.UpdateQuantity(ctx, cart.SessionID, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)

	cart, err = m.UpdateQuantity(ctx, cart.SessionID, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())

	_, err = m.RemoveItem(ctx, cart.SessionID, 1)
	require.Error(t, err)
}

func TestManagerCommitSnapshotsPrices(t *testing.T) {
	m, cat, sal := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	_, err := m.AddItem(ctx, cart.SessionID, "8901030", 2)
	require.NoError(t, err)

	// A price edit after the line was added must not leak into the cart.
	cat.items["8901030"].Price = decimal.RequireFromString("999.00")

	result, err := m.Commit(ctx, cart.SessionID, nil)
	require.NoError(t, err)
	assert.Equal(t, "HYP-10001", result.Sale.InvoiceNumber)

	require.Len(t, sal.committed, 1)
	require.Len(t, sal.committed[0].Lines, 1)
	assert.True(t, sal.committed[0].Lines[0].UnitPrice.Equal(decimal.RequireFromString("450.00")))

	// Session is gone after a successful commit.
	_, err = m.Get(ctx, cart.SessionID)
	require.Error(t, err)
}

func TestManagerFailedCommitKeepsCart(t *testing.T) {
	m, _, sal := newTestManager(t)
	ctx := context.Background()
	cart := m.Open(ctx)

	_, err := m.AddItem(ctx, cart.SessionID, "8901030", 2)
	require.NoError(t, err)

	sal.err = errors.New(errors.CodeConflict, "insufficient stock")
	_, err = m.Commit(ctx, cart.SessionID, nil)
	require.Error(t, err)

	fresh, err := m.Get(ctx, cart.SessionID)
	require.NoError(t, err)
	assert.Len(t, fresh.Lines, 1)
}

func TestManagerPrune(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	stale := m.Open(ctx)
	m.now = func() time.Time { return base.Add(DefaultSessionTTL + time.Minute) }
	live := m.Open(ctx)

	assert.Equal(t, 1, m.Prune(ctx))

	_, err := m.Get(ctx, stale.SessionID)
	require.Error(t, err)
	_, err = m.Get(ctx, live.SessionID)
	require.NoError(t, err)
}
