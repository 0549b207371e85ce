package enums

type LedgerEntryType string

const (
	LedgerEntryPurchase LedgerEntryType = "Purchase"
	LedgerEntrySale     LedgerEntryType = "Sale"
)

func (t LedgerEntryType) IsValid() bool {
	switch t {
	case LedgerEntryPurchase, LedgerEntrySale:
		return true
	}
	return false
}

func (t LedgerEntryType) String() string {
	return string(t)
}
