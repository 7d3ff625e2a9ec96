package finance

import (
	"testing"
	"time"

	"fjacquet/misi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func income(id, category, amount string) models.Transaction {
	return models.Transaction{ID: id, Type: models.TransactionIncome, Category: category, Amount: d(amount), Date: day}
}

func expense(id, category, stream, amount string) models.Transaction {
	return models.Transaction{ID: id, Type: models.TransactionExpense, Category: category, RevenueStream: stream, Amount: d(amount), Date: day}
}

func testCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Salary", Type: models.TransactionIncome, Color: "bg-emerald-400"},
		{ID: "2", Name: "Freelance", Type: models.TransactionIncome, Color: "bg-cyan-400"},
		{ID: "3", Name: "Business", Type: models.TransactionIncome, Color: "bg-blue-400"},
		{ID: "6", Name: "Housing", Type: models.TransactionExpense, Color: "bg-rose-400"},
		{ID: "8", Name: "Food & Dining", Type: models.TransactionExpense, Color: "bg-pink-400"},
	}
}

func TestComputeRevenueStreams_SalaryHousingScenario(t *testing.T) {
	transactions := []models.Transaction{
		income("t1", "Salary", "1000"),
		expense("t2", "Housing", "Salary", "400"),
	}

	streams := ComputeRevenueStreams(transactions, testCategories())
	require.Len(t, streams, 1)

	s := streams[0]
	assert.Equal(t, "Salary", s.Name)
	assert.Equal(t, "1000.00", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "400.00", s.AllocatedExpenses.StringFixed(2))
	assert.Equal(t, "600.00", s.Remaining.StringFixed(2))
	assert.Equal(t, "bg-emerald-400", s.Color)
	require.Len(t, s.Expenses, 1)
	assert.Equal(t, "t2", s.Expenses[0].ID)
}

func TestComputeRevenueStreams_OrderAndFiltering(t *testing.T) {
	transactions := []models.Transaction{
		expense("e1", "Food & Dining", "Freelance", "30"),
		income("i1", "Freelance", "500"),
		income("i2", "Salary", "2000"),
		expense("e2", "Housing", "Salary", "900"),
		expense("e3", "Food & Dining", "Freelance", "20"),
	}

	streams := ComputeRevenueStreams(transactions, testCategories())
	require.Len(t, streams, 2)

	// Category order, not amount order; Business has no activity.
	assert.Equal(t, "Salary", streams[0].Name)
	assert.Equal(t, "Freelance", streams[1].Name)

	freelance := streams[1]
	require.Len(t, freelance.Expenses, 2)
	assert.Equal(t, "e1", freelance.Expenses[0].ID)
	assert.Equal(t, "e3", freelance.Expenses[1].ID)
	assert.Equal(t, "450.00", freelance.Remaining.StringFixed(2))
}

func TestComputeRevenueStreams_OverAllocationIsSurfaced(t *testing.T) {
	transactions := []models.Transaction{
		income("i1", "Salary", "100"),
		expense("e1", "Housing", "Salary", "250"),
	}

	streams := ComputeRevenueStreams(transactions, testCategories())
	require.Len(t, streams, 1)
	assert.Equal(t, "-150.00", streams[0].Remaining.StringFixed(2))
}

func TestComputeRevenueStreams_ExpenseOnlyStream(t *testing.T) {
	streams := ComputeRevenueStreams([]models.Transaction{expense("e1", "Housing", "Business", "75")}, testCategories())
	require.Len(t, streams, 1)
	assert.Equal(t, "Business", streams[0].Name)
	assert.True(t, streams[0].TotalIncome.IsZero())
	assert.Equal(t, "-75.00", streams[0].Remaining.StringFixed(2))
}

func TestComputeRevenueStreams_DanglingReferencesIgnored(t *testing.T) {
	transactions := []models.Transaction{
		income("i1", "Lottery", "1000"),
		expense("e1", "Housing", "Lottery", "10"),
		expense("e2", "Housing", "Housing", "10"),
	}

	streams := ComputeRevenueStreams(transactions, testCategories())
	assert.Empty(t, streams)
}

func TestComputeRevenueStreams_NoActivity(t *testing.T) {
	assert.Empty(t, ComputeRevenueStreams(nil, testCategories()))
	assert.Empty(t, ComputeRevenueStreams([]models.Transaction{income("i1", "Salary", "10")}, nil))
}

func TestComputeRevenueStreams_Idempotent(t *testing.T) {
	transactions := []models.Transaction{
		income("i1", "Salary", "1000"),
		income("i2", "Freelance", "250.50"),
		expense("e1", "Housing", "Salary", "400"),
	}
	categories := testCategories()

	first := ComputeRevenueStreams(transactions, categories)
	second := ComputeRevenueStreams(transactions, categories)
	assert.Equal(t, first, second)
}

func TestComputeTotals(t *testing.T) {
	transactions := []models.Transaction{
		income("i1", "Salary", "1000"),
		income("i2", "Freelance", "250.50"),
		income("i3", "Lottery", "99"),
		expense("e1", "Housing", "Salary", "400"),
		expense("e2", "Food & Dining", "Freelance", "300"),
	}

	totals := ComputeTotals(ComputeRevenueStreams(transactions, testCategories()))

	// Lottery is not a known category, so its income is not counted.
	assert.Equal(t, "1250.50", totals.TotalIncome.StringFixed(2))
	assert.Equal(t, "700.00", totals.TotalExpenses.StringFixed(2))
	assert.Equal(t, "550.50", totals.TotalRemaining.StringFixed(2))
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.TotalIncome.IsZero())
	assert.True(t, totals.TotalExpenses.IsZero())
	assert.True(t, totals.TotalRemaining.IsZero())
}

func TestAvailableRevenueStreams(t *testing.T) {
	transactions := []models.Transaction{
		income("i1", "Freelance", "10"),
		expense("e1", "Housing", "Salary", "5"),
	}

	available := AvailableRevenueStreams(transactions, testCategories())
	require.Len(t, available, 1)
	assert.Equal(t, "Freelance", available[0].Name)
}
