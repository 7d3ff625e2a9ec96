package finance

import (
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeRevenueStreams builds one stream per income category, in category
// order. A stream sums the income booked to the category and the expenses
// that name it as their revenue stream. Streams without any income or
// allocated expense are left out, and so are expenses whose revenue stream
// matches no income category.
func ComputeRevenueStreams(transactions []models.Transaction, categories []models.Category) []models.RevenueStream {
	streams := make([]models.RevenueStream, 0)
	for _, category := range categories {
		if !category.IsIncome() {
			continue
		}

		totalIncome := decimal.Zero
		allocated := decimal.Zero
		expenses := make([]models.Transaction, 0)
		for _, t := range transactions {
			switch {
			case t.IsIncome() && t.Category == category.Name:
				totalIncome = totalIncome.Add(t.Amount)
			case t.IsExpense() && t.RevenueStream == category.Name:
				allocated = allocated.Add(t.Amount)
				expenses = append(expenses, t)
			}
		}

		if !totalIncome.IsPositive() && !allocated.IsPositive() {
			continue
		}

		streams = append(streams, models.RevenueStream{
			Name:              category.Name,
			TotalIncome:       totalIncome,
			AllocatedExpenses: allocated,
			Remaining:         totalIncome.Sub(allocated),
			Utilization:       StreamUtilization(totalIncome, allocated),
			Color:             category.Color,
			Expenses:          expenses,
		})
	}
	return streams
}

// ComputeTotals sums income, allocated expenses and remaining over streams.
func ComputeTotals(streams []models.RevenueStream) models.Totals {
	totals := models.Totals{
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	for _, s := range streams {
		totals.TotalIncome = totals.TotalIncome.Add(s.TotalIncome)
		totals.TotalExpenses = totals.TotalExpenses.Add(s.AllocatedExpenses)
		totals.TotalRemaining = totals.TotalRemaining.Add(s.Remaining)
	}
	return totals
}

// AvailableRevenueStreams returns the income categories that have received
// at least one income transaction. These are the streams an expense or a
// loan payment can be charged to.
func AvailableRevenueStreams(transactions []models.Transaction, categories []models.Category) []models.Category {
	funded := make(map[string]bool)
	for _, t := range transactions {
		if t.IsIncome() {
			funded[t.Category] = true
		}
	}

	out := make([]models.Category, 0)
	for _, c := range categories {
		if c.IsIncome() && funded[c.Name] {
			out = append(out, c)
		}
	}
	return out
}
