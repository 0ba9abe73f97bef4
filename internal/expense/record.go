package expense

import (
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Unknown is stored for merchant and date when no summary field matched.
const Unknown = "Unknown"

// FieldEntry is one labeled summary field returned by the document analysis
type FieldEntry struct {
	Label string
	Value string
}

// Record contains the expense data registered for one receipt
type Record struct {
	ReceiptID    string
	MerchantName string
	Total        decimal.Decimal
	Date         string
}

// NewRecord returns a record holding only sentinel values.
func NewRecord(id string) Record {
	return Record{
		ReceiptID:    id,
		MerchantName: Unknown,
		Total:        decimal.Zero,
		Date:         Unknown,
	}
}

// NewReceiptID generates a random identifier for a receipt record.
func NewReceiptID() string {
	return uuid.Must(uuid.NewV4()).String()
}
