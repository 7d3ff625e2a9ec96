package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a borrowing or lending agreement with a fixed monthly payment.
//
// MonthlyPayment is computed once when the loan is created or edited and is
// not recomputed as payments come in. CurrentBalance only ever decreases and
// is floored at zero; a fully repaid loan stays listed.
type Loan struct {
	ID                      string          `json:"id" yaml:"id"`
	Type                    LoanType        `json:"type" yaml:"type"`
	Name                    string          `json:"name" yaml:"name"`
	PrincipalAmount         decimal.Decimal `json:"principalAmount" yaml:"principalAmount"`
	CurrentBalance          decimal.Decimal `json:"currentBalance" yaml:"currentBalance"`
	InterestRate            decimal.Decimal `json:"interestRate" yaml:"interestRate"`
	TermMonths              int             `json:"termMonths" yaml:"termMonths"`
	MonthlyPayment          decimal.Decimal `json:"monthlyPayment" yaml:"monthlyPayment"`
	StartDate               time.Time       `json:"startDate" yaml:"startDate"`
	NextPaymentDate         time.Time       `json:"nextPaymentDate" yaml:"nextPaymentDate"`
	RevenueStreamAllocation string          `json:"revenueStreamAllocation,omitempty" yaml:"revenueStreamAllocation,omitempty"`
	Category                string          `json:"categoryName" yaml:"categoryName"`
	Description             string          `json:"description" yaml:"description"`
}

// IsLent returns true if the loan is owed to the user
func (l Loan) IsLent() bool {
	return l.Type == LoanLent
}

// IsPaidOff reports whether nothing remains to be repaid.
func (l Loan) IsPaidOff() bool {
	return !l.CurrentBalance.IsPositive()
}

// LoanPayment records one payment against a loan. Amount is split into
// PrincipalAmount and InterestAmount when the payment is made.
type LoanPayment struct {
	ID              string          `json:"id" yaml:"id"`
	LoanID          string          `json:"loanId" yaml:"loanId"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" yaml:"principalAmount"`
	InterestAmount  decimal.Decimal `json:"interestAmount" yaml:"interestAmount"`
	Date            time.Time       `json:"date" yaml:"date"`
	RevenueStream   string          `json:"revenueStream,omitempty" yaml:"revenueStream,omitempty"`
}
