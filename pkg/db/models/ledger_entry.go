package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hypermart/pos-backend/pkg/enums"
)

// EntryDateFormat is the day-granularity date stored on ledger rows.
const EntryDateFormat = "2006-01-02"

// LedgerEntry is one stock movement, either a purchase into stock or a
// sale out of it. ItemName is denormalized so history survives catalog
// renames; ItemID is kept when the item still existed at write time.
type LedgerEntry struct {
	ID        int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntryDate string                `gorm:"column:entry_date;not null;index" json:"entry_date"`
	Type      enums.LedgerEntryType `gorm:"column:type;not null;index" json:"type"`
	ItemID    *int64                `gorm:"column:item_id" json:"item_id,omitempty"`
	ItemName  string                `gorm:"column:item_name;not null" json:"item_name"`
	Quantity  int64                 `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Notes     *string               `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time             `gorm:"column:created_at" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

func EntryDate(t time.Time) string {
	return t.Format(EntryDateFormat)
}
