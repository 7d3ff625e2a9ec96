package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "export", Cmd.Use)
	kind := Cmd.Flags().Lookup("kind")
	require.NotNil(t, kind)
	assert.Equal(t, "transactions", kind.DefValue)
	assert.NotNil(t, Cmd.Flags().Lookup("output"))
}

func seedLedger(t *testing.T, svc *ledger.Service) models.Loan {
	t.Helper()
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddTransaction(ctx, ledger.TransactionForm{Type: models.TransactionIncome, Amount: "500", Category: "Salary", Date: day})
	require.NoError(t, err)
	loan, err := svc.AddLoan(ctx, ledger.LoanForm{
		Type: models.LoanBorrowed, Name: "Bike", PrincipalAmount: "600", InterestRate: "0",
		TermMonths: "6", StartDate: day, RevenueStreamAllocation: "Salary",
	})
	require.NoError(t, err)
	_, err = svc.MakePayment(ctx, loan.ID, ledger.PaymentForm{Amount: "100", Date: day.AddDate(0, 1, 0), RevenueStream: "Salary"})
	require.NoError(t, err)
	return loan
}

func TestExportCommand_Stdout(t *testing.T) {
	c := common.UseTestContainer(t)
	loan := seedLedger(t, c.GetLedger())

	tests := []struct {
		kind   string
		header string
		want   []string
	}{
		{"transactions", "id,date,type,amount,category,description,revenue_stream", []string{"2024-03-01,income,500.00,Salary", "Loan Payment,Bike - Payment,Salary"}},
		{"loans", "id,name,type,principal_amount", []string{"Bike,borrowed,600.00,500.00"}},
		{"payments", "id,loan_id,date,amount", []string{loan.ID + ",2024-04-01,100.00,100.00,0.00,Salary"}},
		{"streams", "name,total_income", []string{"Salary,500.00,100.00,400.00,1"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out, err := common.Execute(NewCommand(), "--kind", tt.kind)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.header), out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestExportCommand_File(t *testing.T) {
	c := common.UseTestContainer(t)
	seedLedger(t, c.GetLedger())
	path := filepath.Join(t.TempDir(), "out", "loans.csv")

	out, err := common.Execute(NewCommand(), "-k", "loans", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported loans to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bike")
}

func TestExportCommand_RoundTripThroughImport(t *testing.T) {
	c := common.UseTestContainer(t)
	seedLedger(t, c.GetLedger())
	path := filepath.Join(t.TempDir(), "transactions.csv")

	_, err := common.Execute(NewCommand(), "-o", path)
	require.NoError(t, err)

	forms, err := c.GetCSV().ReadTransactionsFile(path)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	for _, f := range forms {
		assert.NotEmpty(t, f.Category)
	}
}

func TestExportCommand_UnknownKind(t *testing.T) {
	common.UseTestContainer(t)

	_, err := common.Execute(NewCommand(), "--kind", "budgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export kind: budgets")
}
