package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one stocked product. Barcode is the scan key and is unique
// across the catalog.
type Item struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Barcode   string          `gorm:"column:barcode;uniqueIndex;not null" json:"barcode"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Quantity  int64           `gorm:"column:quantity;not null;default:0" json:"quantity"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}
