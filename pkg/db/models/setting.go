package models

// Setting is a key/value row. The invoice counter lives here under
// the key "last_invoice_number".
type Setting struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value;not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

const SettingLastInvoiceNumber = "last_invoice_number"
