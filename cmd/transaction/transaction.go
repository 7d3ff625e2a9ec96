// Package transaction records and lists income and expense transactions
package transaction

import (
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the transaction command
var Cmd = NewCommand()

// NewCommand builds the transaction command tree.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Record and list transactions",
		Long: `Record and list income and expense transactions. Every expense must name
the revenue stream (income category) that pays for it.`,
	}
	cmd.AddCommand(newListCmd(), newAddCmd(), newEditCmd(), newDeleteCmd(), newImportCmd())
	return cmd
}

type formFlags struct {
	kind          string
	amount        string
	category      string
	description   string
	date          string
	revenueStream string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(models.TransactionExpense), "Transaction type (income, expense)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (default now)")
	cmd.Flags().StringVarP(&f.revenueStream, "stream", "s", "", "Revenue stream paying for an expense")
}

func (f *formFlags) form() (ledger.TransactionForm, error) {
	date, err := common.ParseDateFlag("date", f.date)
	if err != nil {
		return ledger.TransactionForm{}, err
	}
	return ledger.TransactionForm{
		Type:          models.TransactionType(f.kind),
		Amount:        f.amount,
		Category:      f.category,
		Description:   f.description,
		Date:          date,
		RevenueStream: f.revenueStream,
	}, nil
}

// fill copies the fields of t into flags the user did not set.
func (f *formFlags) fill(cmd *cobra.Command, t models.Transaction) {
	flags := cmd.Flags()
	if !flags.Changed("type") {
		f.kind = t.Type.String()
	}
	if !flags.Changed("amount") {
		f.amount = t.Amount.String()
	}
	if !flags.Changed("category") {
		f.category = t.Category
	}
	if !flags.Changed("description") {
		f.description = t.Description
	}
	if !flags.Changed("date") {
		f.date = t.Date.Format(time.RFC3339Nano)
	}
	if !flags.Changed("stream") {
		f.revenueStream = t.RevenueStream
	}
}

func newListCmd() *cobra.Command {
	var kind, stream, month string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()

			var transactions []models.Transaction
			switch {
			case stream != "":
				transactions, err = svc.TransactionsByRevenueStream(env.Ctx, stream)
			case kind != "":
				transactions, err = svc.TransactionsByType(env.Ctx, models.TransactionType(kind))
			default:
				transactions, err = svc.ListTransactions(env.Ctx)
			}
			if err != nil {
				return err
			}

			if month != "" {
				start, end, err := dateutils.MonthRange(month)
				if err != nil {
					return err
				}
				kept := transactions[:0]
				for _, t := range transactions {
					if !t.Date.Before(start) && t.Date.Before(end) {
						kept = append(kept, t)
					}
				}
				transactions = kept
			}
			if limit > 0 && len(transactions) > limit {
				transactions = transactions[:limit]
			}

			PrintTransactions(env.Printer, transactions)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Only list this type (income, expense)")
	cmd.Flags().StringVarP(&stream, "stream", "s", "", "Only list expenses allocated to this revenue stream")
	cmd.Flags().StringVarP(&month, "month", "m", "", "Only list this month (YYYY-MM)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many transactions")
	return cmd
}

// PrintTransactions prints transactions as a table.
func PrintTransactions(p *common.Printer, transactions []models.Transaction) {
	if len(transactions) == 0 {
		p.Muted("No transactions")
		return
	}
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		amount := t.Amount
		if t.IsExpense() {
			amount = amount.Neg()
		}
		rows = append(rows, []string{
			t.ID,
			p.Date(t.Date),
			t.Type.String(),
			t.Category,
			common.OrDash(t.Description),
			common.OrDash(t.RevenueStream),
			p.Balance(amount),
		})
	}
	p.Table([]string{"ID", "DATE", "TYPE", "CATEGORY", "DESCRIPTION", "STREAM", "AMOUNT"}, rows)
}

func newAddCmd() *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Example: `  misi transaction add --type income --amount 3000 --category Salary
  misi transaction add --amount 42.50 --category "Food & Dining" --stream Salary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			form, err := f.form()
			if err != nil {
				return err
			}
			t, err := env.Container.GetLedger().AddTransaction(env.Ctx, form)
			if err != nil {
				return err
			}
			env.Printer.Line("Recorded %s of %s (%s)", t.Type, env.Printer.Money(t.Amount), t.ID)
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
		Short: "Edit a transaction",
		Long:  `Edit a transaction. Fields without a flag keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()
			current, err := svc.GetTransaction(env.Ctx, args[0])
			if err != nil {
				return err
			}
			f.fill(cmd, current)
			form, err := f.form()
			if err != nil {
				return err
			}
			t, err := svc.UpdateTransaction(env.Ctx, args[0], form)
			if err != nil {
				return err
			}
			env.Printer.Line("Updated transaction %s", t.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			if err := env.Container.GetLedger().DeleteTransaction(env.Ctx, args[0]); err != nil {
				return err
			}
			env.Printer.Line("Deleted transaction %s", args[0])
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import transactions from CSV",
		Long: `Import transactions from a CSV file with the columns date, type, amount,
category, description and revenue_stream (an id column is ignored). The file
is imported completely or not at all.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			if err := validation.IsValidPath(args[0]); err != nil {
				return err
			}
			forms, err := env.Container.GetCSV().ReadTransactionsFile(args[0])
			if err != nil {
				return err
			}
			imported, err := env.Container.GetLedger().ImportTransactions(env.Ctx, forms)
			if err != nil {
				return err
			}
			env.Printer.Line("Imported %d transactions", len(imported))
			return nil
		},
	}
}
