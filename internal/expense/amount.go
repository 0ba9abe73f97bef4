package expense

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseAmount for text that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

var amountCleaner = strings.NewReplacer("$", "", ",", "")

// ParseAmount strips currency symbols and thousands separators from a
// detected total and parses what is left as a decimal.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountCleaner.Replace(value))
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return amount, nil
}
