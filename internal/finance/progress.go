package finance

import (
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
)

// LoanProgress is the share of the principal already repaid, in percent.
// A loan without principal reports no progress.
func LoanProgress(loan models.Loan) decimal.Decimal {
	if loan.PrincipalAmount.IsZero() {
		return decimal.Zero
	}
	repaid := loan.PrincipalAmount.Sub(loan.CurrentBalance)
	return repaid.Div(loan.PrincipalAmount).Mul(hundred)
}

// StreamUtilization is the share of a stream's income taken by the expenses
// allocated to it, in percent. It exceeds 100 when a stream is overspent and
// is zero while the stream has no positive income.
func StreamUtilization(totalIncome, allocatedExpenses decimal.Decimal) decimal.Decimal {
	if !totalIncome.IsPositive() {
		return decimal.Zero
	}
	return allocatedExpenses.Div(totalIncome).Mul(hundred)
}
