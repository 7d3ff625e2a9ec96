// Package streams shows revenue streams and the expenses allocated to them
package streams

import (
	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/finance"
	"fjacquet/misi/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the streams command
var Cmd = NewCommand()

// NewCommand builds the streams command tree.
func NewCommand() *cobra.Command {
	var withExpenses bool

	cmd := &cobra.Command{
		Use:   "streams",
		Short: "Show revenue streams",
		Long: `Show every revenue stream with its income, the expenses allocated to it and
what remains, followed by the totals over all streams. Streams with neither
income nor allocated expenses are omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			streams, err := env.Container.GetLedger().RevenueStreams(env.Ctx)
			if err != nil {
				return err
			}
			PrintStreams(env.Printer, streams, withExpenses)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&withExpenses, "expenses", "e", false, "List the expenses allocated to each stream")
	cmd.AddCommand(newAvailableCmd())
	return cmd
}

func newAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List the streams an expense can be allocated to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			categories, err := env.Container.GetLedger().AvailableRevenueStreams(env.Ctx)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				env.Printer.Muted("No income recorded yet")
				return nil
			}
			for _, c := range categories {
				env.Printer.Line("%s", c.Name)
			}
			return nil
		},
	}
}

// PrintStreams prints the revenue streams and their totals.
func PrintStreams(p *common.Printer, streams []models.RevenueStream, withExpenses bool) {
	p.Heading("Revenue streams")
	if len(streams) == 0 {
		p.Muted("No revenue streams yet")
		return
	}

	rows := make([][]string, 0, len(streams)+1)
	for _, s := range streams {
		rows = append(rows, []string{s.Name, p.Money(s.TotalIncome), p.Money(s.AllocatedExpenses), p.Balance(s.Remaining), common.Percent(s.Utilization)})
	}
	totals := finance.ComputeTotals(streams)
	used := finance.StreamUtilization(totals.TotalIncome, totals.TotalExpenses)
	rows = append(rows, []string{"Total", p.Money(totals.TotalIncome), p.Money(totals.TotalExpenses), p.Balance(totals.TotalRemaining), common.Percent(used)})
	p.Table([]string{"STREAM", "INCOME", "ALLOCATED", "REMAINING", "USED"}, rows)

	if !withExpenses {
		return
	}
	for _, s := range streams {
		if len(s.Expenses) == 0 {
			continue
		}
		p.Heading(s.Name)
		expenseRows := make([][]string, 0, len(s.Expenses))
		for _, e := range s.Expenses {
			expenseRows = append(expenseRows, []string{p.Date(e.Date), e.Category, common.OrDash(e.Description), p.Money(e.Amount)})
		}
		p.Table([]string{"DATE", "CATEGORY", "DESCRIPTION", "AMOUNT"}, expenseRows)
	}
}
