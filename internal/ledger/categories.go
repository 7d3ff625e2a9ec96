package ledger

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/misi/internal/ledgererror"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
)

// CategoryForm is the user input for a new category.
type CategoryForm struct {
	Name  string
	Type  models.CategoryType
	Color string
}

// ListCategories returns every category in stored order.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Categories == nil {
		return []models.Category{}, nil
	}
	return snap.Categories, nil
}

// CategoriesByType returns the income or the expense categories.
func (s *Service) CategoriesByType(ctx context.Context, kind models.CategoryType) ([]models.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0)
	for _, c := range snap.Categories {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

// AddCategory creates a category. A name may be used once per type.
func (s *Service) AddCategory(ctx context.Context, form CategoryForm) (models.Category, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return models.Category{}, ledgererror.Invalid("category", "name is required")
	}
	if !form.Type.Valid() {
		return models.Category{}, ledgererror.Invalid("category", fmt.Sprintf("unknown type %q", form.Type))
	}

	category := models.Category{
		ID:    s.newID(),
		Name:  name,
		Type:  form.Type,
		Color: form.Color,
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		for _, c := range snap.Categories {
			if c.Name == category.Name && c.Type == category.Type {
				return ledgererror.Invalid("category", fmt.Sprintf("%s category %q already exists", c.Type, c.Name))
			}
		}
		snap.Categories = append(snap.Categories, category)
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}

	s.logger.Info("Category added",
		logging.Field{Key: logging.FieldCategoryID, Value: category.ID},
		logging.Field{Key: logging.FieldCategory, Value: category.Name})
	return category, nil
}

// DeleteCategory removes a category. Transactions that reference it by
// name are kept and simply stop contributing to revenue streams.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(snap *models.Snapshot) error {
		idx := snap.CategoryIndex(id)
		if idx < 0 {
			return ledgererror.NotFound("category", id)
		}
		snap.Categories = append(snap.Categories[:idx], snap.Categories[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Category deleted", logging.Field{Key: logging.FieldCategoryID, Value: id})
	return nil
}
