package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/models"
)

// text accepts a JSON string or number and keeps its literal text, so the
// validation gate sees exactly what the client sent.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(b)
	return nil
}

// parseDate reads an optional date; empty input means now.
func parseDate(field, value string) (time.Time, error) {
	d, err := dateutils.ParseOptionalDate(value)
	if err != nil {
		return time.Time{}, &ledgererror.ParseError{Field: field, Value: value, Err: err}
	}
	return d, nil
}

type categoryRequest struct {
	Name  string              `json:"name"`
	Type  models.CategoryType `json:"type"`
	Color string              `json:"color"`
}

func (req categoryRequest) form() ledger.CategoryForm {
	return ledger.CategoryForm{Name: strings.TrimSpace(req.Name), Type: req.Type, Color: req.Color}
}

type transactionRequest struct {
	Type          models.TransactionType `json:"type"`
	Amount        text                   `json:"amount"`
	Category      string                 `json:"categoryName"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date"`
	RevenueStream string                 `json:"revenueStream"`
}

func (req transactionRequest) form() (ledger.TransactionForm, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return ledger.TransactionForm{}, err
	}
	return ledger.TransactionForm{
		Type:          req.Type,
		Amount:        string(req.Amount),
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
		RevenueStream: req.RevenueStream,
	}, nil
}

type templateRequest struct {
	Type          models.TransactionType `json:"type"`
	Amount        text                   `json:"amount"`
	Category      string                 `json:"categoryName"`
	Description   string                 `json:"description"`
	RevenueStream string                 `json:"revenueStream"`
}

func (req templateRequest) form() ledger.TemplateForm {
	return ledger.TemplateForm{
		Type:          req.Type,
		Amount:        string(req.Amount),
		Category:      req.Category,
		Description:   req.Description,
		RevenueStream: req.RevenueStream,
	}
}

type loanRequest struct {
	Type                    models.LoanType `json:"type"`
	Name                    string          `json:"name"`
	PrincipalAmount         text            `json:"principalAmount"`
	InterestRate            text            `json:"interestRate"`
	TermMonths              text            `json:"termMonths"`
	StartDate               string          `json:"startDate"`
	RevenueStreamAllocation string          `json:"revenueStreamAllocation"`
	Category                string          `json:"categoryName"`
	Description             string          `json:"description"`
}

func (req loanRequest) form() (ledger.LoanForm, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return ledger.LoanForm{}, err
	}
	return ledger.LoanForm{
		Type:                    req.Type,
		Name:                    req.Name,
		PrincipalAmount:         string(req.PrincipalAmount),
		InterestRate:            string(req.InterestRate),
		TermMonths:              string(req.TermMonths),
		StartDate:               start,
		RevenueStreamAllocation: req.RevenueStreamAllocation,
		Category:                req.Category,
		Description:             req.Description,
	}, nil
}

type paymentRequest struct {
	Amount        text   `json:"amount"`
	Date          string `json:"date"`
	RevenueStream string `json:"revenueStream"`
}

func (req paymentRequest) form() (ledger.PaymentForm, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return ledger.PaymentForm{}, err
	}
	return ledger.PaymentForm{Amount: string(req.Amount), Date: date, RevenueStream: req.RevenueStream}, nil
}
