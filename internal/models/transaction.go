// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID            string          `json:"id" yaml:"id"`
	Type          TransactionType `json:"type" yaml:"type"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Category      string          `json:"categoryName" yaml:"categoryName"`
	Description   string          `json:"description" yaml:"description"`
	Date          time.Time       `json:"date" yaml:"date"`
	RevenueStream string          `json:"revenueStream,omitempty" yaml:"revenueStream,omitempty"`
}

// IsIncome returns true if the transaction is an income
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionIncome
}

// IsExpense returns true if the transaction is an expense
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionExpense
}

// Normalize clears fields that carry no meaning for the transaction type.
// Income transactions never reference a revenue stream.
func (t Transaction) Normalize() Transaction {
	if t.Type == TransactionIncome {
		t.RevenueStream = ""
	}
	return t
}

// TransactionTemplate is a reusable preset for quickly recording a transaction.
type TransactionTemplate struct {
	ID            string          `json:"id" yaml:"id"`
	Type          TransactionType `json:"type" yaml:"type"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Category      string          `json:"categoryName" yaml:"categoryName"`
	Description   string          `json:"description" yaml:"description"`
	RevenueStream string          `json:"revenueStream,omitempty" yaml:"revenueStream,omitempty"`
}

// Instantiate creates a transaction from the template dated at the given time.
func (tpl TransactionTemplate) Instantiate(id string, date time.Time) Transaction {
	return Transaction{
		ID:            id,
		Type:          tpl.Type,
		Amount:        tpl.Amount,
		Category:      tpl.Category,
		Description:   tpl.Description,
		Date:          date,
		RevenueStream: tpl.RevenueStream,
	}.Normalize()
}
