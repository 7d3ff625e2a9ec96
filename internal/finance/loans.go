package finance

import (
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeLoanTotals sums outstanding balances by loan type and the monthly
// payments of borrowed loans.
func ComputeLoanTotals(loans []models.Loan) models.LoanTotals {
	totals := models.LoanTotals{
		TotalBorrowed:   decimal.Zero,
		TotalLent:       decimal.Zero,
		MonthlyPayments: decimal.Zero,
	}
	for _, l := range loans {
		switch l.Type {
		case models.LoanBorrowed:
			totals.TotalBorrowed = totals.TotalBorrowed.Add(l.CurrentBalance)
			totals.MonthlyPayments = totals.MonthlyPayments.Add(l.MonthlyPayment)
		case models.LoanLent:
			totals.TotalLent = totals.TotalLent.Add(l.CurrentBalance)
		}
	}
	return totals
}

// CountLoans returns how many borrowed and lent loans there are.
func CountLoans(loans []models.Loan) (borrowed, lent int) {
	for _, l := range loans {
		switch l.Type {
		case models.LoanBorrowed:
			borrowed++
		case models.LoanLent:
			lent++
		}
	}
	return borrowed, lent
}

// Summarize builds the dashboard summary from a snapshot.
func Summarize(snapshot *models.Snapshot) models.Summary {
	streams := ComputeRevenueStreams(snapshot.Transactions, snapshot.Categories)
	borrowed, lent := CountLoans(snapshot.Loans)
	return models.Summary{
		Totals:         ComputeTotals(streams),
		LoanTotals:     ComputeLoanTotals(snapshot.Loans),
		RevenueStreams: len(streams),
		ActiveLoans:    len(snapshot.Loans),
		BorrowedCount:  borrowed,
		LentCount:      lent,
	}
}
