// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// Printer renders command output with the configured currency and date layout.
type Printer struct {
	out        io.Writer
	currency   string
	dateFormat string
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, currency, dateFormat string) *Printer {
	return &Printer{out: out, currency: currency, dateFormat: dateFormat}
}

// Heading prints a section title.
func (p *Printer) Heading(title string) {
	_, _ = fmt.Fprintln(p.out, headingStyle.Render(title))
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Muted prints a de-emphasized line, used for empty results.
func (p *Printer) Muted(text string) {
	_, _ = fmt.Fprintln(p.out, mutedStyle.Render(text))
}

// Table prints rows under headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, _ = fmt.Fprintln(p.out, t.Render())
}

// Money formats an amount with two decimals and the currency code.
func (p *Printer) Money(d decimal.Decimal) string {
	return models.FormatMoney(d, p.currency)
}

// Balance is Money colored by sign.
func (p *Printer) Balance(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return negativeStyle.Render(p.Money(d))
	case d.IsPositive():
		return positiveStyle.Render(p.Money(d))
	default:
		return p.Money(d)
	}
}

// Date formats t with the configured layout.
func (p *Printer) Date(t time.Time) string {
	return dateutils.FormatDate(t, p.dateFormat)
}

// ParseDateFlag reads an optional --date style flag; empty means now.
func ParseDateFlag(name, value string) (time.Time, error) {
	d, err := dateutils.ParseOptionalDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}

// Percent renders a percentage with one decimal.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// OrDash returns s, or "-" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
