// Package summary prints the ledger dashboard
package summary

import (
	"strconv"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/cmd/loan"
	"fjacquet/misi/cmd/streams"
	"fjacquet/misi/cmd/transaction"
	"fjacquet/misi/internal/ledger"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = NewCommand()

// NewCommand builds the summary command.
func NewCommand() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the financial dashboard",
		Long: `Show income, expenses and what remains over all revenue streams, the loan
portfolio with the monthly payments owed, and the most recent transactions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			limit := recent
			if !cmd.Flags().Changed("recent") {
				limit = env.Container.GetConfig().Report.RecentLimit
			}
			overview, err := env.Container.GetLedger().Overview(env.Ctx, limit)
			if err != nil {
				return err
			}
			PrintOverview(env.Printer, overview)
			return nil
		},
	}
	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "Number of recent transactions to show (default from config)")
	return cmd
}

// PrintOverview prints every dashboard section.
func PrintOverview(p *common.Printer, o ledger.Overview) {
	s := o.Summary
	p.Heading("Summary")
	p.Table([]string{"", ""}, [][]string{
		{"Income", p.Money(s.TotalIncome)},
		{"Expenses", p.Money(s.TotalExpenses)},
		{"Remaining", p.Balance(s.TotalRemaining)},
		{"Revenue streams", strconv.Itoa(s.RevenueStreams)},
		{"Borrowed", p.Money(s.TotalBorrowed) + " (" + strconv.Itoa(s.BorrowedCount) + ")"},
		{"Lent", p.Money(s.TotalLent) + " (" + strconv.Itoa(s.LentCount) + ")"},
		{"Monthly payments", p.Money(s.MonthlyPayments)},
		{"Active loans", strconv.Itoa(s.ActiveLoans)},
	})

	streams.PrintStreams(p, o.RevenueStreams, false)

	p.Heading("Loans")
	loan.PrintLoans(p, o.Loans)

	p.Heading("Recent transactions")
	transaction.PrintTransactions(p, o.RecentTransactions)
}
