package pos

import (
	"github.com/shopspring/decimal"

	"github.com/hypermart/pos-backend/pkg/db/models"
)

// Line is one cart row. UnitPrice was snapshotted when the item was
// added and survives later catalog edits.
type Line struct {
	ItemID    int64           `json:"item_id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart is the serializable view of a session handed to the register UI.
type Cart struct {
	SessionID string          `json:"session_id"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

func newLine(item *models.Item, qty int64) Line {
	return Line{
		ItemID:    item.ID,
		Barcode:   item.Barcode,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  qty,
	}
}
