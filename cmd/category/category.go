// Package category manages income and expense categories
package category

import (
	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the category command
var Cmd = NewCommand()

// NewCommand builds the category command tree.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
		Long: `Manage income and expense categories. Every income category is a revenue
stream that expenses and loan payments can be allocated to.`,
	}
	cmd.AddCommand(newListCmd(), newAddCmd(), newDeleteCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()

			var categories []models.Category
			if kind != "" {
				categories, err = svc.CategoriesByType(env.Ctx, models.CategoryType(kind))
			} else {
				categories, err = svc.ListCategories(env.Ctx)
			}
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				env.Printer.Muted("No categories")
				return nil
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{c.ID, c.Name, c.Type.String(), c.Color})
			}
			env.Printer.Table([]string{"ID", "NAME", "TYPE", "COLOR"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Only list categories of this type (income, expense)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var kind, color string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			c, err := env.Container.GetLedger().AddCategory(env.Ctx, ledger.CategoryForm{
				Name:  args[0],
				Type:  models.CategoryType(kind),
				Color: color,
			})
			if err != nil {
				return err
			}
			env.Printer.Line("Added %s category %q (%s)", c.Type, c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(models.TransactionExpense), "Category type (income, expense)")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category",
		Long:  `Delete a category. Transactions keep their category name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			if err := env.Container.GetLedger().DeleteCategory(env.Ctx, args[0]); err != nil {
				return err
			}
			env.Printer.Line("Deleted category %s", args[0])
			return nil
		},
	}
}
