package summary

import (
	"bytes"
	"context"
	"testing"
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("recent"))
}

func TestSummaryCommand_EmptyLedger(t *testing.T) {
	common.UseTestContainer(t)

	out, err := common.Execute(NewCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "0.00 USD")
	assert.Contains(t, out, "No revenue streams yet")
	assert.Contains(t, out, "No loans")
	assert.Contains(t, out, "No transactions")
}

func TestSummaryCommand_Dashboard(t *testing.T) {
	c := common.UseTestContainer(t)
	ctx := context.Background()
	svc := c.GetLedger()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, form := range []ledger.TransactionForm{
		{Type: models.TransactionIncome, Amount: "3000", Category: "Salary", Description: "January pay"},
		{Type: models.TransactionExpense, Amount: "1200", Category: "Housing", Description: "Rent", RevenueStream: "Salary"},
		{Type: models.TransactionExpense, Amount: "80", Category: "Food", Description: "Groceries", RevenueStream: "Salary"},
	} {
		form.Date = start.AddDate(0, 0, i)
		_, err := svc.AddTransaction(ctx, form)
		require.NoError(t, err)
	}
	_, err := svc.AddLoan(ctx, ledger.LoanForm{
		Type: models.LoanBorrowed, Name: "Car", PrincipalAmount: "1200", InterestRate: "0",
		TermMonths: "12", StartDate: start, RevenueStreamAllocation: "Salary",
	})
	require.NoError(t, err)

	out, err := common.Execute(NewCommand(), "--recent", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "3000.00 USD")
	assert.Contains(t, out, "1280.00 USD")
	assert.Contains(t, out, "1720.00 USD")
	assert.Contains(t, out, "1200.00 USD (1)")
	assert.Contains(t, out, "100.00 USD")
	assert.Contains(t, out, "Car")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "January pay")
}

func TestPrintOverview_NegativeRemaining(t *testing.T) {
	var buf bytes.Buffer
	o := ledger.Overview{}
	o.Summary.TotalExpenses = decimal.NewFromInt(10)
	o.Summary.TotalRemaining = decimal.NewFromInt(-10)

	PrintOverview(common.NewPrinter(&buf, "CHF", ""), o)
	assert.Contains(t, buf.String(), "-10.00 CHF")
}
