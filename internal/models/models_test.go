package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"88.84878867", "USD", "88.85 USD"},
		{"-12.5", "CHF", "-12.50 CHF"},
		{"0", "", "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
	}
}

func TestTypes_Valid(t *testing.T) {
	assert.True(t, TransactionIncome.Valid())
	assert.True(t, TransactionExpense.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, LoanBorrowed.Valid())
	assert.True(t, LoanLent.Valid())
	assert.False(t, LoanType("").Valid())
}

func TestTransaction_NormalizeClearsIncomeStream(t *testing.T) {
	income := Transaction{Type: TransactionIncome, RevenueStream: "Salary"}.Normalize()
	assert.Empty(t, income.RevenueStream)

	expense := Transaction{Type: TransactionExpense, RevenueStream: "Salary"}.Normalize()
	assert.Equal(t, "Salary", expense.RevenueStream)
}

func TestTemplate_Instantiate(t *testing.T) {
	date := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	tpl := TransactionTemplate{ID: "t9", Type: TransactionIncome, Amount: decimal.NewFromInt(20), Category: "Freelance", Description: "Gig", RevenueStream: "Salary"}

	tx := tpl.Instantiate("x1", date)
	assert.Equal(t, "x1", tx.ID)
	assert.Equal(t, date, tx.Date)
	assert.Equal(t, "Gig", tx.Description)
	assert.Empty(t, tx.RevenueStream)
}

func TestCategoryColor(t *testing.T) {
	categories := []Category{{Name: "Salary", Color: "bg-emerald-400"}, {Name: "Misc"}}
	assert.Equal(t, "bg-emerald-400", CategoryColor(categories, "Salary"))
	assert.Equal(t, DefaultCategoryColor, CategoryColor(categories, "Misc"))
	assert.Equal(t, DefaultCategoryColor, CategoryColor(categories, "Unknown"))
}

func TestSnapshot_RemoveLoanCascades(t *testing.T) {
	s := &Snapshot{
		Loans:        []Loan{{ID: "a"}, {ID: "b"}},
		LoanPayments: []LoanPayment{{ID: "p1", LoanID: "a"}, {ID: "p2", LoanID: "b"}, {ID: "p3", LoanID: "a"}},
	}

	assert.True(t, s.RemoveLoan("a"))
	require.Len(t, s.Loans, 1)
	assert.Equal(t, "b", s.Loans[0].ID)
	require.Len(t, s.LoanPayments, 1)
	assert.Equal(t, "p2", s.LoanPayments[0].ID)
	assert.Empty(t, s.PaymentsForLoan("a"))

	assert.False(t, s.RemoveLoan("missing"))
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := &Snapshot{Transactions: []Transaction{{ID: "1"}}}
	c := s.Clone()
	c.Transactions[0].ID = "changed"
	c.Transactions = append(c.Transactions, Transaction{ID: "2"})

	assert.Equal(t, "1", s.Transactions[0].ID)
	assert.Len(t, s.Transactions, 1)
	assert.NotNil(t, (*Snapshot)(nil).Clone())
}

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()
	assert.Len(t, s.Categories, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))
	assert.Len(t, s.Templates, len(DefaultTemplates))
	assert.Empty(t, s.Transactions)

	s.Templates[0].Description = "changed"
	assert.Equal(t, "Coffee", DefaultTemplates[0].Description)
}

func TestLoan_IsPaidOff(t *testing.T) {
	assert.False(t, Loan{CurrentBalance: decimal.NewFromInt(1)}.IsPaidOff())
	assert.True(t, Loan{CurrentBalance: decimal.Zero}.IsPaidOff())
	assert.True(t, Loan{Type: LoanLent}.IsLent())
}
