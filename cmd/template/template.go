// Package template manages reusable transaction templates
package template

import (
	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the template command
var Cmd = NewCommand()

// NewCommand builds the template command tree.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage transaction templates",
		Long: `Manage transaction templates. Using a template records a new transaction
with the template's values, dated now.`,
	}
	cmd.AddCommand(newListCmd(), newAddCmd(), newEditCmd(), newDeleteCmd(), newUseCmd())
	return cmd
}

type formFlags struct {
	kind          string
	amount        string
	category      string
	description   string
	revenueStream string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(models.TransactionExpense), "Transaction type (income, expense)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&f.revenueStream, "stream", "s", "", "Revenue stream paying for an expense")
}

func (f *formFlags) form() ledger.TemplateForm {
	return ledger.TemplateForm{
		Type:          models.TransactionType(f.kind),
		Amount:        f.amount,
		Category:      f.category,
		Description:   f.description,
		RevenueStream: f.revenueStream,
	}
}

func (f *formFlags) fill(cmd *cobra.Command, tpl models.TransactionTemplate) {
	flags := cmd.Flags()
	if !flags.Changed("type") {
		f.kind = tpl.Type.String()
	}
	if !flags.Changed("amount") {
		f.amount = tpl.Amount.String()
	}
	if !flags.Changed("category") {
		f.category = tpl.Category
	}
	if !flags.Changed("description") {
		f.description = tpl.Description
	}
	if !flags.Changed("stream") {
		f.revenueStream = tpl.RevenueStream
	}
}

func findTemplate(templates []models.TransactionTemplate, id string) (models.TransactionTemplate, bool) {
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return models.TransactionTemplate{}, false
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			templates, err := env.Container.GetLedger().ListTemplates(env.Ctx)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				env.Printer.Muted("No templates")
				return nil
			}
			rows := make([][]string, 0, len(templates))
			for _, tpl := range templates {
				rows = append(rows, []string{
					tpl.ID,
					tpl.Description,
					tpl.Type.String(),
					tpl.Category,
					common.OrDash(tpl.RevenueStream),
					env.Printer.Money(tpl.Amount),
				})
			}
			env.Printer.Table([]string{"ID", "DESCRIPTION", "TYPE", "CATEGORY", "STREAM", "AMOUNT"}, rows)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			tpl, err := env.Container.GetLedger().AddTemplate(env.Ctx, f.form())
			if err != nil {
				return err
			}
			env.Printer.Line("Added template %q (%s)", tpl.Description, tpl.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a template",
		Long:  `Edit a template. Fields without a flag keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()
			templates, err := svc.ListTemplates(env.Ctx)
			if err != nil {
				return err
			}
			if current, ok := findTemplate(templates, args[0]); ok {
				f.fill(cmd, current)
			}
			tpl, err := svc.UpdateTemplate(env.Ctx, args[0], f.form())
			if err != nil {
				return err
			}
			env.Printer.Line("Updated template %s", tpl.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			if err := env.Container.GetLedger().DeleteTemplate(env.Ctx, args[0]); err != nil {
				return err
			}
			env.Printer.Line("Deleted template %s", args[0])
			return nil
		},
	}
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use ID",
		Short: "Record a transaction from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			t, err := env.Container.GetLedger().UseTemplate(env.Ctx, args[0])
			if err != nil {
				return err
			}
			env.Printer.Line("Recorded %s %q of %s (%s)", t.Type, t.Description, env.Printer.Money(t.Amount), t.ID)
			return nil
		},
	}
}
