// Package export reads and writes ledger records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/validation"

	"github.com/gocarina/gocsv"
)

// Kind selects which records an export contains.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindLoans        Kind = "loans"
	KindPayments     Kind = "payments"
	KindStreams      Kind = "streams"
)

// Kinds lists every supported export kind.
var Kinds = []Kind{KindTransactions, KindLoans, KindPayments, KindStreams}

// ParseKind checks s against the supported kinds.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported export kind: %s", s)
}

// TransactionRow is the CSV layout of a transaction. The same layout is
// accepted on import, where id is ignored.
type TransactionRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	Type          string `csv:"type"`
	Amount        string `csv:"amount"`
	Category      string `csv:"category"`
	Description   string `csv:"description"`
	RevenueStream string `csv:"revenue_stream"`
}

type LoanRow struct {
	ID                      string `csv:"id"`
	Name                    string `csv:"name"`
	Type                    string `csv:"type"`
	PrincipalAmount         string `csv:"principal_amount"`
	CurrentBalance          string `csv:"current_balance"`
	InterestRate            string `csv:"interest_rate"`
	TermMonths              int    `csv:"term_months"`
	MonthlyPayment          string `csv:"monthly_payment"`
	StartDate               string `csv:"start_date"`
	NextPaymentDate         string `csv:"next_payment_date"`
	RevenueStreamAllocation string `csv:"revenue_stream_allocation"`
	Category                string `csv:"category"`
	Description             string `csv:"description"`
}

type PaymentRow struct {
	ID              string `csv:"id"`
	LoanID          string `csv:"loan_id"`
	Date            string `csv:"date"`
	Amount          string `csv:"amount"`
	PrincipalAmount string `csv:"principal_amount"`
	InterestAmount  string `csv:"interest_amount"`
	RevenueStream   string `csv:"revenue_stream"`
}

type StreamRow struct {
	Name              string `csv:"name"`
	TotalIncome       string `csv:"total_income"`
	AllocatedExpenses string `csv:"allocated_expenses"`
	Remaining         string `csv:"remaining"`
	Expenses          int    `csv:"expense_count"`
	Utilization       string `csv:"utilization"`
}

// CSV writes and reads ledger records with a configurable delimiter.
type CSV struct {
	delimiter  rune
	dateFormat string
	logger     logging.Logger
}

// NewCSV creates a CSV codec. Dates are written with dateFormat, a Go
// layout; an empty layout means ISO dates.
func NewCSV(delimiter rune, dateFormat string, logger logging.Logger) *CSV {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSV{delimiter: delimiter, dateFormat: dateFormat, logger: logger}
}

func (c *CSV) date(t models.Transaction) string {
	return dateutils.FormatDate(t.Date, c.dateFormat)
}

// TransactionRows converts transactions to CSV rows.
func (c *CSV) TransactionRows(transactions []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, TransactionRow{
			ID:            t.ID,
			Date:          c.date(t),
			Type:          t.Type.String(),
			Amount:        t.Amount.StringFixed(2),
			Category:      t.Category,
			Description:   t.Description,
			RevenueStream: t.RevenueStream,
		})
	}
	return rows
}

// LoanRows converts loans to CSV rows.
func (c *CSV) LoanRows(loans []models.Loan) []LoanRow {
	rows := make([]LoanRow, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, LoanRow{
			ID:                      l.ID,
			Name:                    l.Name,
			Type:                    l.Type.String(),
			PrincipalAmount:         l.PrincipalAmount.StringFixed(2),
			CurrentBalance:          l.CurrentBalance.StringFixed(2),
			InterestRate:            l.InterestRate.String(),
			TermMonths:              l.TermMonths,
			MonthlyPayment:          l.MonthlyPayment.StringFixed(2),
			StartDate:               dateutils.FormatDate(l.StartDate, c.dateFormat),
			NextPaymentDate:         dateutils.FormatDate(l.NextPaymentDate, c.dateFormat),
			RevenueStreamAllocation: l.RevenueStreamAllocation,
			Category:                l.Category,
			Description:             l.Description,
		})
	}
	return rows
}

// PaymentRows converts loan payments to CSV rows.
func (c *CSV) PaymentRows(payments []models.LoanPayment) []PaymentRow {
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:              p.ID,
			LoanID:          p.LoanID,
			Date:            dateutils.FormatDate(p.Date, c.dateFormat),
			Amount:          p.Amount.StringFixed(2),
			PrincipalAmount: p.PrincipalAmount.StringFixed(2),
			InterestAmount:  p.InterestAmount.StringFixed(2),
			RevenueStream:   p.RevenueStream,
		})
	}
	return rows
}

// StreamRows converts revenue streams to CSV rows.
func (c *CSV) StreamRows(streams []models.RevenueStream) []StreamRow {
	rows := make([]StreamRow, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, StreamRow{
			Name:              s.Name,
			TotalIncome:       s.TotalIncome.StringFixed(2),
			AllocatedExpenses: s.AllocatedExpenses.StringFixed(2),
			Remaining:         s.Remaining.StringFixed(2),
			Expenses:          len(s.Expenses),
			Utilization:       s.Utilization.StringFixed(1),
		})
	}
	return rows
}

// Write marshals rows, a slice of one of the row types, to w.
func (c *CSV) Write(w io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteFile marshals rows to path, creating parent directories.
func (c *CSV) WriteFile(path string, rows interface{}) error {
	if err := validation.PrepareOutputPath(path); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := c.Write(file, rows); err != nil {
		return err
	}
	c.logger.Info("Wrote CSV file", logging.Field{Key: logging.FieldOutputFile, Value: path})
	return nil
}

// ReadTransactions parses transaction rows from r into forms ready for
// ledger.Service.ImportTransactions. Dates must be parseable; amounts are
// left as text for the validation gate.
func (c *CSV) ReadTransactions(r io.Reader) ([]ledger.TransactionForm, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = c.delimiter
	csvReader.TrimLeadingSpace = true

	var rows []TransactionRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	forms := make([]ledger.TransactionForm, 0, len(rows))
	for i, row := range rows {
		date, err := dateutils.ParseOptionalDate(row.Date)
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		forms = append(forms, ledger.TransactionForm{
			Type:          models.TransactionType(row.Type),
			Amount:        row.Amount,
			Category:      row.Category,
			Description:   row.Description,
			Date:          date,
			RevenueStream: row.RevenueStream,
		})
	}
	return forms, nil
}

// ReadTransactionsFile is ReadTransactions on a file.
func (c *CSV) ReadTransactionsFile(path string) ([]ledger.TransactionForm, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	forms, err := c.ReadTransactions(file)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Read transactions from CSV",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(forms)})
	return forms, nil
}
