package ledger

import (
	"context"
	"time"

	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/validation"
)

// TransactionForm is the user input for a transaction. Amount is the text
// the user typed; a zero Date means now.
type TransactionForm struct {
	Type          models.TransactionType
	Amount        string
	Category      string
	Description   string
	Date          time.Time
	RevenueStream string
}

// build validates the form and turns it into a transaction with id.
func (s *Service) build(id string, form TransactionForm) (models.Transaction, error) {
	if err := validation.CheckTransaction(form.Type, form.Amount, form.Category, form.RevenueStream); err != nil {
		return models.Transaction{}, err
	}
	amount, err := validation.ParseDecimal("amount", form.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		ID:            id,
		Type:          form.Type,
		Amount:        amount,
		Category:      form.Category,
		Description:   form.Description,
		Date:          s.dateOrNow(form.Date),
		RevenueStream: form.RevenueStream,
	}.Normalize(), nil
}

// ListTransactions returns every transaction, newest first.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Transactions == nil {
		return []models.Transaction{}, nil
	}
	sortTransactionsByDateDesc(snap.Transactions)
	return snap.Transactions, nil
}

// RecentTransactions returns at most limit transactions, newest first.
func (s *Service) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	transactions, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// TransactionsByType returns the income or the expense transactions, newest first.
func (s *Service) TransactionsByType(ctx context.Context, kind models.TransactionType) ([]models.Transaction, error) {
	return s.filterTransactions(ctx, func(t models.Transaction) bool { return t.Type == kind })
}

// TransactionsByRevenueStream returns the expenses charged to stream, newest first.
func (s *Service) TransactionsByRevenueStream(ctx context.Context, stream string) ([]models.Transaction, error) {
	return s.filterTransactions(ctx, func(t models.Transaction) bool { return t.RevenueStream == stream })
}

func (s *Service) filterTransactions(ctx context.Context, keep func(models.Transaction) bool) ([]models.Transaction, error) {
	all, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0)
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetTransaction returns one transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	idx := snap.TransactionIndex(id)
	if idx < 0 {
		return models.Transaction{}, ledgererror.NotFound("transaction", id)
	}
	return snap.Transactions[idx], nil
}

// AddTransaction validates and records a transaction.
func (s *Service) AddTransaction(ctx context.Context, form TransactionForm) (models.Transaction, error) {
	txn, err := s.build(s.newID(), form)
	if err != nil {
		return models.Transaction{}, err
	}

	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		snap.Transactions = append(snap.Transactions, txn)
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	s.logger.Info("Transaction added",
		logging.Field{Key: logging.FieldTransactionID, Value: txn.ID},
		logging.Field{Key: logging.FieldAmount, Value: txn.Amount.String()},
		logging.Field{Key: logging.FieldRevenueStream, Value: txn.RevenueStream})
	return txn, nil
}

// ImportTransactions validates every form and records them together. When
// one form is rejected nothing is recorded.
func (s *Service) ImportTransactions(ctx context.Context, forms []TransactionForm) ([]models.Transaction, error) {
	imported := make([]models.Transaction, 0, len(forms))
	for _, form := range forms {
		txn, err := s.build(s.newID(), form)
		if err != nil {
			return nil, err
		}
		imported = append(imported, txn)
	}

	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		snap.Transactions = append(snap.Transactions, imported...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transactions imported", logging.Field{Key: logging.FieldCount, Value: len(imported)})
	return imported, nil
}

// UpdateTransaction replaces the transaction with id by the form contents.
func (s *Service) UpdateTransaction(ctx context.Context, id string, form TransactionForm) (models.Transaction, error) {
	txn, err := s.build(id, form)
	if err != nil {
		return models.Transaction{}, err
	}

	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.TransactionIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("transaction", id)
		}
		snap.Transactions[idx] = txn
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	s.logger.Info("Transaction updated", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return txn, nil
}

// DeleteTransaction removes a transaction.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.TransactionIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("transaction", id)
		}
		snap.Transactions = append(snap.Transactions[:idx], snap.Transactions[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Transaction deleted", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return nil
}
