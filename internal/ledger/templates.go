package ledger

import (
	"context"
	"sort"

	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/validation"
)

// TemplateForm is the user input for a transaction template.
type TemplateForm struct {
	Type          models.TransactionType
	Amount        string
	Category      string
	Description   string
	RevenueStream string
}

func buildTemplate(id string, form TemplateForm) (models.TransactionTemplate, error) {
	if err := validation.CheckTransaction(form.Type, form.Amount, form.Category, form.RevenueStream); err != nil {
		return models.TransactionTemplate{}, err
	}
	amount, err := validation.ParseDecimal("amount", form.Amount)
	if err != nil {
		return models.TransactionTemplate{}, err
	}
	tpl := models.TransactionTemplate{
		ID:            id,
		Type:          form.Type,
		Amount:        amount,
		Category:      form.Category,
		Description:   form.Description,
		RevenueStream: form.RevenueStream,
	}
	if tpl.Type == models.TransactionIncome {
		tpl.RevenueStream = ""
	}
	return tpl, nil
}

// ListTemplates returns the templates sorted by description.
func (s *Service) ListTemplates(ctx context.Context) ([]models.TransactionTemplate, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Templates == nil {
		return []models.TransactionTemplate{}, nil
	}
	sort.SliceStable(snap.Templates, func(i, j int) bool {
		return snap.Templates[i].Description < snap.Templates[j].Description
	})
	return snap.Templates, nil
}

// AddTemplate validates and stores a template.
func (s *Service) AddTemplate(ctx context.Context, form TemplateForm) (models.TransactionTemplate, error) {
	tpl, err := buildTemplate(s.newID(), form)
	if err != nil {
		return models.TransactionTemplate{}, err
	}
	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		snap.Templates = append(snap.Templates, tpl)
		return nil
	})
	if err != nil {
		return models.TransactionTemplate{}, err
	}
	s.logger.Info("Template added", logging.Field{Key: logging.FieldTemplateID, Value: tpl.ID})
	return tpl, nil
}

// UpdateTemplate replaces the template with id by the form contents.
func (s *Service) UpdateTemplate(ctx context.Context, id string, form TemplateForm) (models.TransactionTemplate, error) {
	tpl, err := buildTemplate(id, form)
	if err != nil {
		return models.TransactionTemplate{}, err
	}
	err = s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.TemplateIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("template", id)
		}
		snap.Templates[idx] = tpl
		return nil
	})
	if err != nil {
		return models.TransactionTemplate{}, err
	}
	s.logger.Info("Template updated", logging.Field{Key: logging.FieldTemplateID, Value: id})
	return tpl, nil
}

// DeleteTemplate removes a template.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.TemplateIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("template", id)
		}
		snap.Templates = append(snap.Templates[:idx], snap.Templates[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Template deleted", logging.Field{Key: logging.FieldTemplateID, Value: id})
	return nil
}

// UseTemplate records a new transaction from the template, dated now.
func (s *Service) UseTemplate(ctx context.Context, id string) (models.Transaction, error) {
	var txn models.Transaction
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.TemplateIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("template", id)
		}
		txn = snap.Templates[idx].Instantiate(s.newID(), s.now())
		snap.Transactions = append(snap.Transactions, txn)
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("Template used",
		logging.Field{Key: logging.FieldTemplateID, Value: id},
		logging.Field{Key: logging.FieldTransactionID, Value: txn.ID})
	return txn, nil
}
