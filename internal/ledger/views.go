package ledger

import (
	"context"
	"time"

	"fjacquet/misi/internal/finance"
	"fjacquet/misi/internal/models"
)

// Overview gathers everything the dashboard and the reports show.
type Overview struct {
	GeneratedAt        time.Time              `json:"generatedAt" yaml:"generatedAt"`
	Summary            models.Summary         `json:"summary" yaml:"summary"`
	RevenueStreams     []models.RevenueStream `json:"revenueStreams" yaml:"revenueStreams"`
	Loans              []LoanView             `json:"loans" yaml:"loans"`
	RecentTransactions []models.Transaction   `json:"recentTransactions" yaml:"recentTransactions"`
}

// RevenueStreams computes the revenue streams of the ledger.
func (s *Service) RevenueStreams(ctx context.Context) ([]models.RevenueStream, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return finance.ComputeRevenueStreams(snap.Transactions, snap.Categories), nil
}

// Totals sums the revenue streams.
func (s *Service) Totals(ctx context.Context) (models.Totals, error) {
	streams, err := s.RevenueStreams(ctx)
	if err != nil {
		return models.Totals{}, err
	}
	return finance.ComputeTotals(streams), nil
}

// LoanTotals sums the loan portfolio.
func (s *Service) LoanTotals(ctx context.Context) (models.LoanTotals, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return models.LoanTotals{}, err
	}
	return finance.ComputeLoanTotals(snap.Loans), nil
}

// AvailableRevenueStreams lists the income categories that received income.
func (s *Service) AvailableRevenueStreams(ctx context.Context) ([]models.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return finance.AvailableRevenueStreams(snap.Transactions, snap.Categories), nil
}

// Summary returns the dashboard figures.
func (s *Service) Summary(ctx context.Context) (models.Summary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	return finance.Summarize(snap), nil
}

// Overview computes every view from a single snapshot, with at most
// recentLimit recent transactions.
func (s *Service) Overview(ctx context.Context, recentLimit int) (Overview, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Overview{}, err
	}

	recent := append([]models.Transaction(nil), snap.Transactions...)
	sortTransactionsByDateDesc(recent)
	if recentLimit >= 0 && len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	loans := append([]models.Loan{}, snap.Loans...)
	sortLoansByName(loans)

	return Overview{
		GeneratedAt:        s.now(),
		Summary:            finance.Summarize(snap),
		RevenueStreams:     finance.ComputeRevenueStreams(snap.Transactions, snap.Categories),
		Loans:              LoanViews(loans),
		RecentTransactions: recent,
	}, nil
}
