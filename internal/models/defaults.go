package models

import "github.com/shopspring/decimal"

// DefaultIncomeCategories are seeded into an empty ledger.
var DefaultIncomeCategories = []Category{
	{ID: "1", Name: "Salary", Type: TransactionIncome, Color: "bg-emerald-400"},
	{ID: "2", Name: "Freelance", Type: TransactionIncome, Color: "bg-cyan-400"},
	{ID: "3", Name: "Business", Type: TransactionIncome, Color: "bg-blue-400"},
	{ID: "4", Name: "Investments", Type: TransactionIncome, Color: "bg-indigo-400"},
	{ID: "5", Name: "Other Income", Type: TransactionIncome, Color: "bg-slate-400"},
}

// DefaultExpenseCategories are seeded into an empty ledger.
var DefaultExpenseCategories = []Category{
	{ID: "6", Name: "Housing", Type: TransactionExpense, Color: "bg-rose-400"},
	{ID: "7", Name: "Transportation", Type: TransactionExpense, Color: "bg-orange-400"},
	{ID: "8", Name: "Food & Dining", Type: TransactionExpense, Color: "bg-pink-400"},
	{ID: "9", Name: "Utilities", Type: TransactionExpense, Color: "bg-purple-400"},
	{ID: "10", Name: "Healthcare", Type: TransactionExpense, Color: "bg-teal-400"},
	{ID: "11", Name: "Entertainment", Type: TransactionExpense, Color: "bg-cyan-400"},
	{ID: "12", Name: "Shopping", Type: TransactionExpense, Color: "bg-violet-400"},
	{ID: "13", Name: "Other Expenses", Type: TransactionExpense, Color: "bg-slate-400"},
}

// DefaultTemplates are seeded into an empty ledger.
var DefaultTemplates = []TransactionTemplate{
	{ID: "t1", Type: TransactionExpense, Amount: decimal.RequireFromString("4.50"), Category: "Food & Dining", Description: "Coffee", RevenueStream: "Salary"},
	{ID: "t2", Type: TransactionExpense, Amount: decimal.RequireFromString("45.00"), Category: "Transportation", Description: "Gas Fill-up", RevenueStream: "Salary"},
	{ID: "t3", Type: TransactionExpense, Amount: decimal.RequireFromString("120.00"), Category: "Food & Dining", Description: "Groceries", RevenueStream: "Salary"},
	{ID: "t4", Type: TransactionExpense, Amount: decimal.RequireFromString("12.00"), Category: "Food & Dining", Description: "Lunch", RevenueStream: "Freelance"},
	{ID: "t5", Type: TransactionExpense, Amount: decimal.RequireFromString("25.00"), Category: "Entertainment", Description: "Movie Ticket", RevenueStream: "Freelance"},
}

// DefaultSnapshot returns a fresh ledger holding the default categories and
// templates and nothing else.
func DefaultSnapshot() *Snapshot {
	categories := make([]Category, 0, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))
	categories = append(categories, DefaultIncomeCategories...)
	categories = append(categories, DefaultExpenseCategories...)
	return &Snapshot{
		Categories: categories,
		Templates:  append([]TransactionTemplate(nil), DefaultTemplates...),
	}
}
