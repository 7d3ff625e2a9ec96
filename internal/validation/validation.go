// Package validation is the gate user input passes before a Transaction or
// Loan record is built from it. Checks are presence and parseability only:
// negative or zero amounts are accepted here.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
)

var errEmpty = errors.New("value is empty")

// ValidateTransaction reports whether the form fields describe an
// acceptable transaction.
func ValidateTransaction(kind models.TransactionType, amountText, category, revenueStream string) bool {
	return CheckTransaction(kind, amountText, category, revenueStream) == nil
}

// CheckTransaction is ValidateTransaction with the reason for rejection.
func CheckTransaction(kind models.TransactionType, amountText, category, revenueStream string) error {
	if !kind.Valid() {
		return ledgererror.Invalid("transaction", fmt.Sprintf("unknown type %q", kind))
	}
	if _, err := ParseDecimal("amount", amountText); err != nil {
		return err
	}
	if strings.TrimSpace(category) == "" {
		return ledgererror.Invalid("transaction", "category is required")
	}
	if kind == models.TransactionExpense && strings.TrimSpace(revenueStream) == "" {
		return ledgererror.Invalid("transaction", "expense requires a revenue stream")
	}
	return nil
}

// ValidateLoan reports whether the form fields describe an acceptable loan.
func ValidateLoan(kind models.LoanType, name, principalText, rateText, termText, revenueStream string) bool {
	return CheckLoan(kind, name, principalText, rateText, termText, revenueStream) == nil
}

// CheckLoan is ValidateLoan with the reason for rejection.
func CheckLoan(kind models.LoanType, name, principalText, rateText, termText, revenueStream string) error {
	if !kind.Valid() {
		return ledgererror.Invalid("loan", fmt.Sprintf("unknown type %q", kind))
	}
	if strings.TrimSpace(name) == "" {
		return ledgererror.Invalid("loan", "name is required")
	}
	if _, err := ParseDecimal("principalAmount", principalText); err != nil {
		return err
	}
	if _, err := ParseDecimal("interestRate", rateText); err != nil {
		return err
	}
	if _, err := ParseTerm(termText); err != nil {
		return err
	}
	if kind == models.LoanBorrowed && strings.TrimSpace(revenueStream) == "" {
		return ledgererror.Invalid("loan", "borrowed loan requires a revenue stream allocation")
	}
	return nil
}

// ValidatePayment reports whether a loan payment can be recorded.
func ValidatePayment(amountText, revenueStream string) bool {
	return CheckPayment(amountText, revenueStream) == nil
}

// CheckPayment is ValidatePayment with the reason for rejection.
func CheckPayment(amountText, revenueStream string) error {
	if _, err := ParseDecimal("amount", amountText); err != nil {
		return err
	}
	if strings.TrimSpace(revenueStream) == "" {
		return ledgererror.Invalid("payment", "revenue stream is required")
	}
	return nil
}

// ParseDecimal reads a monetary or percentage field.
func ParseDecimal(field, text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, &ledgererror.ParseError{Field: field, Value: text, Err: errEmpty}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &ledgererror.ParseError{Field: field, Value: text, Err: err}
	}
	return d, nil
}

// ParseTerm reads a loan term as a whole number of months.
func ParseTerm(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, &ledgererror.ParseError{Field: "termMonths", Value: text, Err: errEmpty}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ledgererror.ParseError{Field: "termMonths", Value: text, Err: err}
	}
	return n, nil
}

// IsValidPath checks if a given path exists and is a regular file or directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", filepath.Clean(path))
	}
	return nil
}

// PrepareOutputPath creates the parent directory of an output file and
// checks that path itself is not a directory.
func PrepareOutputPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := IsValidPath(dir); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", filepath.Clean(path))
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "json", "yaml", "pdf":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml', 'pdf'", format)
	}
}
