package models

// TransactionType is the direction of a recorded cash movement.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func (t TransactionType) String() string {
	return string(t)
}

// CategoryType mirrors TransactionType for categories.
type CategoryType = TransactionType

// LoanType distinguishes money the user owes from money owed to the user.
type LoanType string

const (
	LoanBorrowed LoanType = "borrowed"
	LoanLent     LoanType = "lent"
)

// Valid reports whether t is a known loan type.
func (t LoanType) Valid() bool {
	return t == LoanBorrowed || t == LoanLent
}

func (t LoanType) String() string {
	return string(t)
}
