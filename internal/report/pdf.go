package report

import (
	"bytes"
	"fmt"
	"strconv"

	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const maxPDFRows = 200

func (g *Generator) money(d decimal.Decimal) string {
	return models.FormatAmount(d)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func (g *Generator) generatePDF(overview ledger.Overview) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Financial Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Generated: "+dateutils.FormatDate(overview.GeneratedAt, g.dateFormat))
	pdf.Ln(10)

	s := overview.Summary
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(20, 20, 20)

	g.section(pdf, "Summary")
	sumW := []float64{62, 62, 58}
	g.header(pdf, sumW, []string{"Income (" + g.currency + ")", "Expenses (" + g.currency + ")", "Remaining (" + g.currency + ")"}, "C")
	g.row(pdf, sumW, []string{g.money(s.TotalIncome), g.money(s.TotalExpenses), g.money(s.TotalRemaining)}, "C")
	g.header(pdf, sumW, []string{"Borrowed", "Lent", "Monthly payments"}, "C")
	g.row(pdf, sumW, []string{g.money(s.TotalBorrowed), g.money(s.TotalLent), g.money(s.MonthlyPayments)}, "C")
	pdf.Ln(6)

	g.section(pdf, "Revenue streams")
	streamW := []float64{58, 34, 34, 34, 22}
	g.header(pdf, streamW, []string{"STREAM", "INCOME", "ALLOCATED", "REMAINING", "USED"}, "R")
	for _, stream := range overview.RevenueStreams {
		g.row(pdf, streamW, []string{
			tr(stream.Name),
			g.money(stream.TotalIncome),
			g.money(stream.AllocatedExpenses),
			g.money(stream.Remaining),
			percent(stream.Utilization),
		}, "R")
	}
	pdf.Ln(6)

	g.section(pdf, "Loans")
	loanW := []float64{42, 20, 28, 26, 18, 20, 28}
	g.header(pdf, loanW, []string{"NAME", "TYPE", "BALANCE", "MONTHLY", "RATE %", "PAID", "NEXT DUE"}, "R")
	for _, loan := range overview.Loans {
		g.row(pdf, loanW, []string{
			tr(loan.Name),
			loan.Type.String(),
			g.money(loan.CurrentBalance),
			g.money(loan.MonthlyPayment),
			loan.InterestRate.String(),
			percent(loan.Progress),
			dateutils.FormatDate(loan.NextPaymentDate, g.dateFormat),
		}, "R")
	}
	pdf.Ln(6)

	g.section(pdf, "Recent transactions")
	txW := []float64{26, 22, 40, 64, 30}
	g.header(pdf, txW, []string{"DATE", "TYPE", "CATEGORY", "DESCRIPTION", "AMOUNT"}, "R")
	for i, t := range overview.RecentTransactions {
		if i >= maxPDFRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated after "+strconv.Itoa(maxPDFRows)+" rows", "1", 1, "C", false, 0, "")
			break
		}
		g.row(pdf, txW, []string{
			dateutils.FormatDate(t.Date, g.dateFormat),
			t.Type.String(),
			tr(t.Category),
			tr(t.Description),
			g.money(t.Amount),
		}, "R")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.WithError(err).Error("Failed to render PDF report")
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	g.logger.Debug("Rendered PDF report", logging.Field{Key: logging.FieldCount, Value: buf.Len()})
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

// header draws a filled header line. The first column is left aligned,
// the others use align.
func (g *Generator) header(pdf *gofpdf.Fpdf, widths []float64, labels []string, align string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	g.cells(pdf, widths, labels, align, true)
}

func (g *Generator) row(pdf *gofpdf.Fpdf, widths []float64, values []string, align string) {
	pdf.SetFont("Helvetica", "", 9)
	g.cells(pdf, widths, values, align, false)
}

func (g *Generator) cells(pdf *gofpdf.Fpdf, widths []float64, values []string, align string, fill bool) {
	for i, v := range values {
		a := align
		if i == 0 {
			a = "L"
		}
		ln := 0
		if i == len(values)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, truncate(v, widths[i]), "1", ln, a, fill, 0, "")
	}
}

// truncate shortens s so it roughly fits a cell of width mm at 9pt.
func truncate(s string, width float64) string {
	limit := int(width / 1.9)
	if len(s) <= limit || limit < 4 {
		return s
	}
	return s[:limit-3] + "..."
}
