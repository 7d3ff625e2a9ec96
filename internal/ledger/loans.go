package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"fjacquet/misi/internal/finance"
	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/validation"

	"github.com/shopspring/decimal"
)

// LoanForm is the user input for a loan. Numeric fields hold the text the
// user typed; a zero StartDate means now.
type LoanForm struct {
	Type                    models.LoanType
	Name                    string
	PrincipalAmount         string
	InterestRate            string
	TermMonths              string
	StartDate               time.Time
	RevenueStreamAllocation string
	Category                string
	Description             string
}

// PaymentForm is the user input for a loan payment. An empty RevenueStream
// falls back to the loan's allocation; a zero Date means now.
type PaymentForm struct {
	Amount        string
	Date          time.Time
	RevenueStream string
}

// LoanDetail is a loan together with its payments, newest first.
type LoanDetail struct {
	Loan     LoanView             `json:"loan" yaml:"loan"`
	Payments []models.LoanPayment `json:"payments" yaml:"payments"`
}

// LoanView is a loan together with how much of it has been repaid, in
// percent of the principal.
type LoanView struct {
	models.Loan `yaml:",inline"`
	Progress    decimal.Decimal `json:"progress" yaml:"progress"`
}

// NewLoanView wraps loan with its repayment progress.
func NewLoanView(loan models.Loan) LoanView {
	return LoanView{Loan: loan, Progress: finance.LoanProgress(loan)}
}

// LoanViews wraps every loan with its repayment progress.
func LoanViews(loans []models.Loan) []LoanView {
	views := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, NewLoanView(l))
	}
	return views
}

// buildLoan validates the form and computes the fixed monthly payment. The
// balance starts at the principal and the first payment is due one month
// after the start date.
func (s *Service) buildLoan(id string, form LoanForm) (models.Loan, error) {
	if err := validation.CheckLoan(form.Type, form.Name, form.PrincipalAmount, form.InterestRate, form.TermMonths, form.RevenueStreamAllocation); err != nil {
		return models.Loan{}, err
	}
	principal, err := validation.ParseDecimal("principalAmount", form.PrincipalAmount)
	if err != nil {
		return models.Loan{}, err
	}
	rate, err := validation.ParseDecimal("interestRate", form.InterestRate)
	if err != nil {
		return models.Loan{}, err
	}
	term, err := validation.ParseTerm(form.TermMonths)
	if err != nil {
		return models.Loan{}, err
	}

	monthly, err := finance.MonthlyPayment(principal, rate, term)
	if errors.Is(err, finance.ErrInvalidTerm) {
		return models.Loan{}, ledgererror.Invalid("loan", err.Error())
	}
	if err != nil {
		return models.Loan{}, err
	}

	start := s.dateOrNow(form.StartDate)
	loan := models.Loan{
		ID:                      id,
		Type:                    form.Type,
		Name:                    strings.TrimSpace(form.Name),
		PrincipalAmount:         principal,
		CurrentBalance:          principal,
		InterestRate:            rate,
		TermMonths:              term,
		MonthlyPayment:          monthly,
		StartDate:               start,
		NextPaymentDate:         finance.FirstPaymentDate(start),
		RevenueStreamAllocation: form.RevenueStreamAllocation,
		Category:                form.Category,
		Description:             form.Description,
	}
	if loan.IsLent() {
		loan.RevenueStreamAllocation = ""
	}
	return loan, nil
}

// ListLoans returns every loan sorted by name.
func (s *Service) ListLoans(ctx context.Context) ([]models.Loan, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Loans == nil {
		return []models.Loan{}, nil
	}
	sortLoansByName(snap.Loans)
	return snap.Loans, nil
}

// LoansByType returns the borrowed or the lent loans sorted by name.
func (s *Service) LoansByType(ctx context.Context, kind models.LoanType) ([]models.Loan, error) {
	all, err := s.ListLoans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Loan, 0)
	for _, l := range all {
		if l.Type == kind {
			out = append(out, l)
		}
	}
	return out, nil
}

// AddLoan validates and records a loan.
func (s *Service) AddLoan(ctx context.Context, form LoanForm) (models.Loan, error) {
	loan, err := s.buildLoan(s.newID(), form)
	if err != nil {
		return models.Loan{}, err
	}
	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		snap.Loans = append(snap.Loans, loan)
		return nil
	})
	if err != nil {
		return models.Loan{}, err
	}
	s.logger.Info("Loan added",
		logging.Field{Key: logging.FieldLoanID, Value: loan.ID},
		logging.Field{Key: logging.FieldAmount, Value: loan.PrincipalAmount.String()})
	return loan, nil
}

// UpdateLoan replaces the loan terms. The monthly payment is recomputed and
// the balance goes back to the principal; recorded payments are kept.
func (s *Service) UpdateLoan(ctx context.Context, id string, form LoanForm) (models.Loan, error) {
	loan, err := s.buildLoan(id, form)
	if err != nil {
		return models.Loan{}, err
	}
	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.LoanIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("loan", id)
		}
		snap.Loans[idx] = loan
		return nil
	})
	if err != nil {
		return models.Loan{}, err
	}
	s.logger.Info("Loan updated", logging.Field{Key: logging.FieldLoanID, Value: id})
	return loan, nil
}

// DeleteLoan removes a loan and every payment recorded against it. The
// expense transactions created by those payments stay in the ledger.
func (s *Service) DeleteLoan(ctx context.Context, id string) error {
	var removed int
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		removed = len(snap.PaymentsForLoan(id))
		if !snap.RemoveLoan(id) {
			return ledgererror.NotFound("loan", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Loan deleted",
		logging.Field{Key: logging.FieldLoanID, Value: id},
		logging.Field{Key: logging.FieldCount, Value: removed})
	return nil
}

// LoanWithPayments returns a loan and its payments.
func (s *Service) LoanWithPayments(ctx context.Context, id string) (LoanDetail, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return LoanDetail{}, err
	}
	idx := snap.LoanIndex(id)
	if idx < 0 {
		return LoanDetail{}, ledgererror.NotFound("loan", id)
	}
	payments := snap.PaymentsForLoan(id)
	if payments == nil {
		payments = []models.LoanPayment{}
	}
	sortPaymentsByDateDesc(payments)
	return LoanDetail{Loan: NewLoanView(snap.Loans[idx]), Payments: payments}, nil
}

// LoanPayments returns the payments of one loan, or of every loan when
// loanID is empty, newest first.
func (s *Service) LoanPayments(ctx context.Context, loanID string) ([]models.LoanPayment, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	payments := make([]models.LoanPayment, 0, len(snap.LoanPayments))
	for _, p := range snap.LoanPayments {
		if loanID == "" || p.LoanID == loanID {
			payments = append(payments, p)
		}
	}
	sortPaymentsByDateDesc(payments)
	return payments, nil
}

// MakePayment records a payment against a loan. The payment record, the
// reduced balance, the advanced due date and the expense transaction are
// saved together or not at all.
func (s *Service) MakePayment(ctx context.Context, loanID string, form PaymentForm) (finance.PaymentResult, error) {
	var result finance.PaymentResult
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.LoanIndex(loanID)
		if idx < 0 {
			return ledgererror.NotFound("loan", loanID)
		}
		loan := snap.Loans[idx]

		stream := form.RevenueStream
		if strings.TrimSpace(stream) == "" {
			stream = loan.RevenueStreamAllocation
		}
		if err := validation.CheckPayment(form.Amount, stream); err != nil {
			return err
		}
		amount, err := validation.ParseDecimal("amount", form.Amount)
		if err != nil {
			return err
		}

		result = finance.ApplyPayment(loan, finance.PaymentRequest{
			Amount:        amount,
			Date:          s.dateOrNow(form.Date),
			RevenueStream: stream,
			PaymentID:     s.newID(),
			TransactionID: s.newID(),
		})

		snap.Loans[idx] = result.Loan
		snap.LoanPayments = append(snap.LoanPayments, result.Payment)
		snap.Transactions = append(snap.Transactions, result.Transaction)
		return nil
	})
	if err != nil {
		return finance.PaymentResult{}, err
	}

	s.logger.Info("Loan payment recorded",
		logging.Field{Key: logging.FieldLoanID, Value: loanID},
		logging.Field{Key: logging.FieldPaymentID, Value: result.Payment.ID},
		logging.Field{Key: logging.FieldAmount, Value: result.Payment.Amount.String()},
		logging.Field{Key: logging.FieldBalance, Value: result.Loan.CurrentBalance.StringFixed(2)})
	if result.Loan.IsPaidOff() {
		s.logger.Info("Loan paid off", logging.Field{Key: logging.FieldLoanID, Value: loanID})
	}
	return result, nil
}

func sortLoansByName(loans []models.Loan) {
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].Name < loans[j].Name
	})
}

func sortPaymentsByDateDesc(payments []models.LoanPayment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})
}
