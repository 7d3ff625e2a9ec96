package streams

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

func TestStreamsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "streams", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.Flags().Lookup("expenses"))
	require.Len(t, Cmd.Commands(), 1)
	assert.Equal(t, "available", Cmd.Commands()[0].Name())
}

func TestStreamsCommand_Empty(t *testing.T) {
	common.UseTestContainer(t)

	out, err := common.Execute(NewCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No revenue streams yet")

	out, err = common.Execute(NewCommand(), "available")
	require.NoError(t, err)
	assert.Contains(t, out, "No income recorded yet")
}

func seed(t *testing.T, svc *ledger.Service) {
	t.Helper()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, form := range []ledger.TransactionForm{
		{Type: models.TransactionIncome, Amount: "1000", Category: "Salary", Date: day},
		{Type: models.TransactionExpense, Amount: "250", Category: "Housing", Description: "Rent", RevenueStream: "Salary", Date: day},
	} {
		_, err := svc.AddTransaction(context.Background(), form)
		require.NoError(t, err)
	}
}

func TestStreamsCommand_ShowsAllocation(t *testing.T) {
	c := common.UseTestContainer(t)
	seed(t, c.GetLedger())

	out, err := common.Execute(NewCommand(), "--expenses")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "1000.00 USD")
	assert.Contains(t, out, "250.00 USD")
	assert.Contains(t, out, "750.00 USD")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Rent")

	out, err = common.Execute(NewCommand())
	require.NoError(t, err)
	assert.NotContains(t, out, "Rent")
}

func TestStreamsCommand_Available(t *testing.T) {
	c := common.UseTestContainer(t)
	seed(t, c.GetLedger())

	out, err := common.Execute(NewCommand(), "available")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.NotContains(t, out, "Freelance")
}

func TestPrintStreams_NegativeRemaining(t *testing.T) {
	var buf bytes.Buffer
	streams := []models.RevenueStream{{
		Name:              "Freelance",
		TotalIncome:       decimal.NewFromInt(100),
		AllocatedExpenses: decimal.NewFromInt(150),
		Remaining:         decimal.NewFromInt(-50),
		Utilization:       decimal.NewFromInt(150),
		Expenses:          []models.Transaction{{Description: "Laptop", Amount: decimal.NewFromInt(150)}},
	}}

	PrintStreams(common.NewPrinter(&buf, "USD", ""), streams, false)
	assert.Contains(t, buf.String(), "-50.00 USD")
	assert.Contains(t, buf.String(), "150.0%")
	assert.NotContains(t, buf.String(), "Laptop")
}
