package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with the two-decimal display convention.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoney renders an amount followed by a currency code, e.g. "12.50 MWK".
// An empty currency renders the amount alone.
func FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return FormatAmount(amount)
	}
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}
