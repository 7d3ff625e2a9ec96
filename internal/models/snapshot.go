package models

// Snapshot holds every record collection of a ledger. Stores load and save
// whole snapshots; the ledger service mutates a loaded copy and saves it back.
type Snapshot struct {
	Categories   []Category            `json:"categories" yaml:"categories"`
	Transactions []Transaction         `json:"transactions" yaml:"transactions"`
	Templates    []TransactionTemplate `json:"templates" yaml:"templates"`
	Loans        []Loan                `json:"loans" yaml:"loans"`
	LoanPayments []LoanPayment         `json:"loanPayments" yaml:"loanPayments"`
}

// Clone returns a copy whose slices can be modified without affecting s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	out := &Snapshot{
		Categories:   append([]Category(nil), s.Categories...),
		Transactions: append([]Transaction(nil), s.Transactions...),
		Templates:    append([]TransactionTemplate(nil), s.Templates...),
		Loans:        append([]Loan(nil), s.Loans...),
		LoanPayments: append([]LoanPayment(nil), s.LoanPayments...),
	}
	return out
}

// TransactionIndex returns the position of the transaction with id, or -1.
func (s *Snapshot) TransactionIndex(id string) int {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// TemplateIndex returns the position of the template with id, or -1.
func (s *Snapshot) TemplateIndex(id string) int {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return i
		}
	}
	return -1
}

// LoanIndex returns the position of the loan with id, or -1.
func (s *Snapshot) LoanIndex(id string) int {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return i
		}
	}
	return -1
}

// CategoryIndex returns the position of the category with id, or -1.
func (s *Snapshot) CategoryIndex(id string) int {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// PaymentsForLoan returns the payments recorded against loanID in stored order.
func (s *Snapshot) PaymentsForLoan(loanID string) []LoanPayment {
	var out []LoanPayment
	for _, p := range s.LoanPayments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out
}

// RemoveLoan deletes the loan and every payment it owns. It returns false
// when no loan has the given id.
func (s *Snapshot) RemoveLoan(loanID string) bool {
	idx := s.LoanIndex(loanID)
	if idx < 0 {
		return false
	}
	s.Loans = append(s.Loans[:idx], s.Loans[idx+1:]...)

	kept := s.LoanPayments[:0]
	for _, p := range s.LoanPayments {
		if p.LoanID != loanID {
			kept = append(kept, p)
		}
	}
	s.LoanPayments = kept
	return true
}
