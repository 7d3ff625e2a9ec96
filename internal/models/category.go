package models

// Category is a named bucket for transactions. The name of an income
// category doubles as the revenue stream identifier referenced by expenses
// and loans.
type Category struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Type  CategoryType `json:"type" yaml:"type"`
	Color string       `json:"color" yaml:"color"`
}

// IsIncome returns true for income categories, i.e. revenue streams.
func (c Category) IsIncome() bool {
	return c.Type == TransactionIncome
}

// FindCategory returns the first category with the given name, regardless of type.
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryColor returns the color of the named category or DefaultCategoryColor.
func CategoryColor(categories []Category, name string) string {
	if c, ok := FindCategory(categories, name); ok && c.Color != "" {
		return c.Color
	}
	return DefaultCategoryColor
}
