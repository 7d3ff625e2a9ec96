package transaction_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/cmd/transaction"
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCommand_Metadata(t *testing.T) {
	assert.Equal(t, "transaction", transaction.Cmd.Use)
	assert.Contains(t, transaction.Cmd.Aliases, "tx")

	names := []string{}
	for _, c := range transaction.Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "edit", "delete", "import"}, names)
}

func TestTransactionCommand_AddAndList(t *testing.T) {
	common.UseTestContainer(t)

	out, err := common.Execute(transaction.NewCommand(), "add", "--type", "income", "--amount", "3000", "--category", "Salary", "--date", "2024-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded income of 3000.00 USD")

	_, err = common.Execute(transaction.NewCommand(), "add", "--amount", "42.50", "--category", "Food & Dining", "--stream", "Salary", "--date", "2024-06-03", "--description", "Groceries")
	require.NoError(t, err)

	out, err = common.Execute(transaction.NewCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "-42.50 USD")
	assert.Contains(t, out, "2024-05-01")

	out, err = common.Execute(transaction.NewCommand(), "list", "--month", "2024-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.NotContains(t, out, "Groceries")

	out, err = common.Execute(transaction.NewCommand(), "list", "--stream", "Salary")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "3000.00")

	_, err = common.Execute(transaction.NewCommand(), "list", "--month", "May")
	assert.ErrorContains(t, err, "expected YYYY-MM")
}

func TestTransactionCommand_RejectsInvalidInput(t *testing.T) {
	c := common.UseTestContainer(t)

	_, err := common.Execute(transaction.NewCommand(), "add", "--amount", "12", "--category", "Housing")
	assert.ErrorContains(t, err, "revenue stream")

	_, err = common.Execute(transaction.NewCommand(), "add", "--type", "income", "--amount", "twelve", "--category", "Salary")
	assert.ErrorContains(t, err, "amount")

	_, err = common.Execute(transaction.NewCommand(), "add", "--type", "income", "--amount", "12", "--category", "Salary", "--date", "someday")
	assert.ErrorContains(t, err, "--date")

	all, err := c.GetLedger().ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTransactionCommand_EditKeepsUnsetFields(t *testing.T) {
	c := common.UseTestContainer(t)
	ctx := context.Background()

	_, err := common.Execute(transaction.NewCommand(), "add", "--amount", "42.50", "--category", "Food & Dining", "--stream", "Salary", "--date", "2024-06-03", "--description", "Groceries")
	require.NoError(t, err)
	all, err := c.GetLedger().ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	id := all[0].ID

	_, err = common.Execute(transaction.NewCommand(), "edit", id, "--amount", "50")
	require.NoError(t, err)

	updated, err := c.GetLedger().GetTransaction(ctx, id)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Groceries", updated.Description)
	assert.Equal(t, "Salary", updated.RevenueStream)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), updated.Date.UTC())

	out, err := common.Execute(transaction.NewCommand(), "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted transaction")

	_, err = common.Execute(transaction.NewCommand(), "edit", id, "--amount", "1")
	assert.ErrorContains(t, err, "not found")
}

func TestTransactionCommand_Import(t *testing.T) {
	c := common.UseTestContainer(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte(`date,type,amount,category,description,revenue_stream
2024-05-01,income,1000,Salary,May pay,
2024-05-02,expense,250,Housing,Rent,Salary
`), 0600))

	out, err := common.Execute(transaction.NewCommand(), "import", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions")

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte(`date,type,amount,category,description,revenue_stream
2024-05-03,income,10,Salary,,
2024-05-04,expense,5,Housing,,
`), 0600))

	_, err = common.Execute(transaction.NewCommand(), "import", bad)
	require.Error(t, err)

	_, err = common.Execute(transaction.NewCommand(), "import", filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")

	all, err := c.GetLedger().TransactionsByType(context.Background(), models.TransactionIncome)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
