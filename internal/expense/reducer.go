package expense

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category tells which record field a summary field feeds.
type Category int

const (
	CategoryNone Category = iota
	CategoryMerchant
	CategoryTotal
	CategoryDate
)

func (c Category) String() string {
	switch c {
	case CategoryMerchant:
		return "merchant"
	case CategoryTotal:
		return "total"
	case CategoryDate:
		return "date"
	default:
		return "none"
	}
}

// Classify matches a summary field label against the known labels.
// Merchant is checked before total, total before date.
func Classify(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "vendor") || strings.Contains(l, "merchant"):
		return CategoryMerchant
	case strings.Contains(l, "total"):
		return CategoryTotal
	case strings.Contains(l, "date"):
		return CategoryDate
	default:
		return CategoryNone
	}
}

// Reduce builds the record for one receipt under a freshly generated id.
func Reduce(entries []FieldEntry) Record {
	return ReduceWithID(NewReceiptID(), entries)
}

// ReduceWithID folds the summary fields into a record, in order. When several
// fields land in the same category the last one wins, and a total that fails
// to parse resets the total to zero even if an earlier one was valid.
func ReduceWithID(id string, entries []FieldEntry) Record {
	rec := NewRecord(id)

	for _, e := range entries {
		switch Classify(e.Label) {
		case CategoryMerchant:
			rec.MerchantName = e.Value
		case CategoryTotal:
			amount, err := ParseAmount(e.Value)
			if err != nil {
				amount = decimal.Zero
			}
			rec.Total = amount
		case CategoryDate:
			rec.Date = e.Value
		}
	}

	return rec
}
