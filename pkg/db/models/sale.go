package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one committed transaction. Lines carry price snapshots taken
// at cart time, so Total stays stable even after catalog price edits.
type Sale struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;uniqueIndex;not null" json:"invoice_number"`
	Date          time.Time       `gorm:"column:date;not null" json:"date"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	TableNumber   *string         `gorm:"column:table_number" json:"table_number,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}

type SaleItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SaleID    int64           `gorm:"column:sale_id;not null;index" json:"sale_id"`
	ItemID    int64           `gorm:"column:item_id;not null" json:"item_id"`
	ItemName  string          `gorm:"column:item_name;not null" json:"item_name"`
	Quantity  int64           `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}
