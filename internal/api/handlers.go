package api

import (
	"net/http"

	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/report"
	"fjacquet/misi/internal/validation"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	var (
		categories []models.Category
		err        error
	)
	if kind := r.URL.Query().Get("type"); kind != "" {
		categories, err = s.ledger.CategoriesByType(r.Context(), models.CategoryType(kind))
	} else {
		categories, err = s.ledger.ListCategories(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	category, err := s.ledger.AddCategory(r.Context(), req.form())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTransactions supports ?type= and ?revenueStream= filters.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		transactions []models.Transaction
		err          error
	)
	q := r.URL.Query()
	switch {
	case q.Get("revenueStream") != "":
		transactions, err = s.ledger.TransactionsByRevenueStream(r.Context(), q.Get("revenueStream"))
	case q.Get("type") != "":
		transactions, err = s.ledger.TransactionsByType(r.Context(), models.TransactionType(q.Get("type")))
	default:
		transactions, err = s.ledger.ListTransactions(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, transactions)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.ledger.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := req.form()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.ledger.AddTransaction(r.Context(), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := req.form()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.ledger.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.ledger.ListTemplates(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, templates)
}

func (s *Server) addTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	tpl, err := s.ledger.AddTemplate(r.Context(), req.form())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tpl)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	tpl, err := s.ledger.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), req.form())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, tpl)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) useTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.ledger.UseTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

func (s *Server) listLoans(w http.ResponseWriter, r *http.Request) {
	var (
		loans []models.Loan
		err   error
	)
	if kind := r.URL.Query().Get("type"); kind != "" {
		loans, err = s.ledger.LoansByType(r.Context(), models.LoanType(kind))
	} else {
		loans, err = s.ledger.ListLoans(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ledger.LoanViews(loans))
}

func (s *Server) getLoan(w http.ResponseWriter, r *http.Request) {
	detail, err := s.ledger.LoanWithPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

func (s *Server) addLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := req.form()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	loan, err := s.ledger.AddLoan(r.Context(), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ledger.NewLoanView(loan))
}

func (s *Server) updateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := req.form()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	loan, err := s.ledger.UpdateLoan(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ledger.NewLoanView(loan))
}

func (s *Server) deleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteLoan(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	detail, err := s.ledger.LoanWithPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail.Payments)
}

func (s *Server) makePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := req.form()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := s.ledger.MakePayment(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

type streamsResponse struct {
	RevenueStreams []models.RevenueStream `json:"revenueStreams"`
	Totals         models.Totals          `json:"totals"`
}

func (s *Server) revenueStreams(w http.ResponseWriter, r *http.Request) {
	overview, err := s.ledger.Overview(r.Context(), 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, streamsResponse{
		RevenueStreams: overview.RevenueStreams,
		Totals:         overview.Summary.Totals,
	})
}

func (s *Server) availableRevenueStreams(w http.ResponseWriter, r *http.Request) {
	categories, err := s.ledger.AvailableRevenueStreams(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	overview, err := s.ledger.Overview(r.Context(), s.recentLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

func (s *Server) pdfReport(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, report.FormatPDF)
}

// reportByFormat serves /api/report?format=json|yaml|pdf, json by default.
func (s *Server) reportByFormat(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = report.FormatJSON
	}
	s.writeReport(w, r, format)
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, format string) {
	if err := validation.IsValidReportFormat(format); err != nil {
		s.fail(w, r, ledgererror.Invalid("report format", err.Error()))
		return
	}
	overview, err := s.ledger.Overview(r.Context(), s.recentLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.reports.Generate(overview, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType(format))
	if format == report.FormatPDF {
		w.Header().Set("Content-Disposition", `inline; filename="misi-report.pdf"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
