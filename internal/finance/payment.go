package finance

import (
	"fmt"
	"time"

	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentSplit is the interest and principal share of one payment.
type PaymentSplit struct {
	Interest  decimal.Decimal
	Principal decimal.Decimal
}

// SplitPayment divides a payment into one month of interest on the current
// balance and the principal that remains. The interest share is not capped
// by the payment: a payment smaller than the interest due yields a zero
// principal share and the full interest.
func SplitPayment(payment, currentBalance, annualRatePercent decimal.Decimal) PaymentSplit {
	interest := currentBalance.Mul(MonthlyRate(annualRatePercent))
	principal := decimal.Max(decimal.Zero, payment.Sub(interest))
	return PaymentSplit{Interest: interest, Principal: principal}
}

// PaymentRequest describes a payment the user wants to record.
type PaymentRequest struct {
	Amount        decimal.Decimal
	Date          time.Time
	RevenueStream string
	PaymentID     string
	TransactionID string
}

// PaymentResult carries every record touched by a payment. Callers must
// persist all three together.
type PaymentResult struct {
	Payment     models.LoanPayment `json:"payment" yaml:"payment"`
	Loan        models.Loan        `json:"loan" yaml:"loan"`
	Transaction models.Transaction `json:"transaction" yaml:"transaction"`
}

// ApplyPayment computes the effects of paying req.Amount against loan: the
// payment record, the loan with its reduced balance and advanced next
// payment date, and the expense transaction charged to the revenue stream.
func ApplyPayment(loan models.Loan, req PaymentRequest) PaymentResult {
	split := SplitPayment(req.Amount, loan.CurrentBalance, loan.InterestRate)

	payment := models.LoanPayment{
		ID:              req.PaymentID,
		LoanID:          loan.ID,
		Amount:          req.Amount,
		PrincipalAmount: split.Principal,
		InterestAmount:  split.Interest,
		Date:            req.Date,
		RevenueStream:   req.RevenueStream,
	}

	updated := loan
	updated.CurrentBalance = decimal.Max(decimal.Zero, loan.CurrentBalance.Sub(split.Principal))
	updated.NextPaymentDate = loan.NextPaymentDate.Add(models.PaymentInterval)

	txn := models.Transaction{
		ID:            req.TransactionID,
		Type:          models.TransactionExpense,
		Amount:        req.Amount,
		Category:      models.CategoryLoanPayment,
		Description:   fmt.Sprintf(models.LoanPaymentDescription, loan.Name),
		Date:          req.Date,
		RevenueStream: req.RevenueStream,
	}

	return PaymentResult{Payment: payment, Loan: updated, Transaction: txn}
}

// FirstPaymentDate is one calendar month after the loan starts.
func FirstPaymentDate(start time.Time) time.Time {
	return start.AddDate(0, 1, 0)
}
