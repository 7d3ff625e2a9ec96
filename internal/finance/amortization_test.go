package finance

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		term      int
		expected  string
	}{
		{name: "twelve percent over a year", principal: "1000", rate: "12", term: 12, expected: "88.85"},
		{name: "zero rate is straight line", principal: "1200", rate: "0", term: 12, expected: "100.00"},
		{name: "single month repays principal plus one month of interest", principal: "1000", rate: "12", term: 1, expected: "1010.00"},
		{name: "thirty year mortgage", principal: "200000", rate: "6", term: 360, expected: "1199.10"},
		{name: "fractional rate", principal: "5000", rate: "3.5", term: 24, expected: "216.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := MonthlyPayment(d(tt.principal), d(tt.rate), tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, payment.StringFixed(2))
		})
	}
}

func TestMonthlyPayment_ZeroRateIsExact(t *testing.T) {
	payment, err := MonthlyPayment(d("1200"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, payment.Equal(d("100")), "got %s", payment)
}

func TestMonthlyPayment_InvalidTerm(t *testing.T) {
	// Wraps past int32 on 64-bit platforms and goes negative on 32-bit ones.
	beyondInt32 := math.MaxInt32
	beyondInt32 += 2

	tests := []struct {
		name string
		term int
	}{
		{"zero", 0},
		{"negative", -1},
		{"negative year", -12},
		{"above maximum", MaxTermMonths + 1},
		{"beyond int32", beyondInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := MonthlyPayment(d("1000"), d("12"), tt.term)
			assert.ErrorIs(t, err, ErrInvalidTerm)
			assert.True(t, payment.IsZero())
		})
	}

	_, err := MonthlyPayment(d("1000"), d("12"), MaxTermMonths)
	assert.NoError(t, err)
}

func TestMonthlyPayment_RepaysPrincipal(t *testing.T) {
	// Paying the computed amount every month leaves (almost) nothing owed.
	principal := d("10000")
	rate := d("7.25")
	term := 48

	payment, err := MonthlyPayment(principal, rate, term)
	require.NoError(t, err)

	balance := principal
	for i := 0; i < term; i++ {
		split := SplitPayment(payment, balance, rate)
		balance = balance.Sub(split.Principal)
	}
	assert.True(t, balance.Abs().LessThan(d("0.000001")), "remaining balance %s", balance)
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(d("12")).Equal(d("0.01")))
	assert.True(t, MonthlyRate(decimal.Zero).IsZero())
}
