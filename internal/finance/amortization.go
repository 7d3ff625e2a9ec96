// Package finance holds the pure calculations behind every ledger view:
// loan amortization, payment splitting, revenue stream aggregation and
// portfolio totals. Nothing in this package performs I/O or keeps state.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxTermMonths is the longest loan term accepted, one hundred years.
const MaxTermMonths = 1200

// ErrInvalidTerm is returned for loan terms outside 1..MaxTermMonths.
var ErrInvalidTerm = fmt.Errorf("loan term must be between 1 and %d months", MaxTermMonths)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// MonthlyPayment returns the fixed payment that repays principal over
// termMonths at the given annual rate. A zero rate repays in equal parts.
// The result is not rounded.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 || termMonths > MaxTermMonths {
		return decimal.Zero, ErrInvalidTerm
	}
	months := decimal.NewFromInt(int64(termMonths))

	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(months), nil
	}

	growth, err := decimal.NewFromInt(1).Add(r).PowInt32(int32(termMonths))
	if err != nil {
		return decimal.Zero, err
	}
	denominator := growth.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return principal.Div(months), nil
	}
	return principal.Mul(r).Mul(growth).Div(denominator), nil
}
