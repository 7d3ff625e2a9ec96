package models

import "github.com/shopspring/decimal"

// RevenueStream is a derived view over one income category: what came in,
// which expenses were allocated against it and what is left.
type RevenueStream struct {
	Name              string          `json:"name" yaml:"name"`
	TotalIncome       decimal.Decimal `json:"totalIncome" yaml:"totalIncome"`
	AllocatedExpenses decimal.Decimal `json:"allocatedExpenses" yaml:"allocatedExpenses"`
	Remaining         decimal.Decimal `json:"remaining" yaml:"remaining"`
	Utilization       decimal.Decimal `json:"utilization" yaml:"utilization"`
	Color             string          `json:"color" yaml:"color"`
	Expenses          []Transaction   `json:"expenses" yaml:"expenses"`
}

// Totals sums revenue streams across the portfolio.
type Totals struct {
	TotalIncome    decimal.Decimal `json:"totalIncome" yaml:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses" yaml:"totalExpenses"`
	TotalRemaining decimal.Decimal `json:"totalRemaining" yaml:"totalRemaining"`
}

// LoanTotals sums outstanding balances per direction. MonthlyPayments only
// covers borrowed loans since it models cash the user has to pay out.
type LoanTotals struct {
	TotalBorrowed   decimal.Decimal `json:"totalBorrowed" yaml:"totalBorrowed"`
	TotalLent       decimal.Decimal `json:"totalLent" yaml:"totalLent"`
	MonthlyPayments decimal.Decimal `json:"monthlyPayments" yaml:"monthlyPayments"`
}

// Summary is the dashboard view of the whole ledger.
type Summary struct {
	Totals         `yaml:",inline"`
	LoanTotals     `yaml:",inline"`
	RevenueStreams int `json:"revenueStreams" yaml:"revenueStreams"`
	ActiveLoans    int `json:"activeLoans" yaml:"activeLoans"`
	BorrowedCount  int `json:"borrowedCount" yaml:"borrowedCount"`
	LentCount      int `json:"lentCount" yaml:"lentCount"`
}
