// Package loan tracks borrowed and lent loans and their payments
package loan

import (
	"strconv"
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/dateutils"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the loan command
var Cmd = NewCommand()

// NewCommand builds the loan command tree.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Track loans and payments",
		Long: `Track money you borrowed and money you lent. The monthly payment is computed
from the principal, the annual interest rate and the term when the loan is
added or edited. Each payment is split into interest and principal, reduces
the balance, and is recorded as a "Loan Payment" expense on a revenue stream.`,
	}
	cmd.AddCommand(newListCmd(), newAddCmd(), newEditCmd(), newDeleteCmd(), newPayCmd(), newShowCmd())
	return cmd
}

type formFlags struct {
	kind        string
	principal   string
	rate        string
	term        string
	start       string
	stream      string
	category    string
	description string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(models.LoanBorrowed), "Loan type (borrowed, lent)")
	cmd.Flags().StringVarP(&f.principal, "principal", "p", "", "Principal amount")
	cmd.Flags().StringVarP(&f.rate, "rate", "r", "0", "Annual interest rate in percent")
	cmd.Flags().StringVar(&f.term, "term", "", "Term in months")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (default now)")
	cmd.Flags().StringVarP(&f.stream, "stream", "s", "", "Revenue stream paying a borrowed loan")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
}

func (f *formFlags) form(name string) (ledger.LoanForm, error) {
	start, err := common.ParseDateFlag("start", f.start)
	if err != nil {
		return ledger.LoanForm{}, err
	}
	return ledger.LoanForm{
		Type:                    models.LoanType(f.kind),
		Name:                    name,
		PrincipalAmount:         f.principal,
		InterestRate:            f.rate,
		TermMonths:              f.term,
		StartDate:               start,
		RevenueStreamAllocation: f.stream,
		Category:                f.category,
		Description:             f.description,
	}, nil
}

func (f *formFlags) fill(cmd *cobra.Command, l models.Loan) {
	flags := cmd.Flags()
	if !flags.Changed("type") {
		f.kind = l.Type.String()
	}
	if !flags.Changed("principal") {
		f.principal = l.PrincipalAmount.String()
	}
	if !flags.Changed("rate") {
		f.rate = l.InterestRate.String()
	}
	if !flags.Changed("term") {
		f.term = strconv.Itoa(l.TermMonths)
	}
	if !flags.Changed("start") {
		f.start = l.StartDate.Format(time.RFC3339Nano)
	}
	if !flags.Changed("stream") {
		f.stream = l.RevenueStreamAllocation
	}
	if !flags.Changed("category") {
		f.category = l.Category
	}
	if !flags.Changed("description") {
		f.description = l.Description
	}
}

func newListCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()
			var loans []models.Loan
			if kind != "" {
				loans, err = svc.LoansByType(env.Ctx, models.LoanType(kind))
			} else {
				loans, err = svc.ListLoans(env.Ctx)
			}
			if err != nil {
				return err
			}
			PrintLoans(env.Printer, ledger.LoanViews(loans))
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Only list this type (borrowed, lent)")
	return cmd
}

// PrintLoans prints loans as a table.
func PrintLoans(p *common.Printer, loans []ledger.LoanView) {
	if len(loans) == 0 {
		p.Muted("No loans")
		return
	}
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []string{
			l.ID,
			l.Name,
			l.Type.String(),
			p.Money(l.CurrentBalance),
			p.Money(l.MonthlyPayment),
			l.InterestRate.String() + "%",
			common.Percent(l.Progress),
			p.Date(l.NextPaymentDate),
			common.OrDash(l.RevenueStreamAllocation),
		})
	}
	p.Table([]string{"ID", "NAME", "TYPE", "BALANCE", "MONTHLY", "RATE", "PROGRESS", "NEXT DUE", "STREAM"}, rows)
}

func newAddCmd() *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Add a loan",
		Example: `  misi loan add "Car" --principal 12000 --rate 4.5 --term 48 --stream Salary`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			form, err := f.form(args[0])
			if err != nil {
				return err
			}
			l, err := env.Container.GetLedger().AddLoan(env.Ctx, form)
			if err != nil {
				return err
			}
			env.Printer.Line("Added %s loan %q (%s), monthly payment %s, first due %s",
				l.Type, l.Name, l.ID, env.Printer.Money(l.MonthlyPayment), env.Printer.Date(l.NextPaymentDate))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	var f formFlags
	var name string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a loan",
		Long: `Edit a loan. Fields without a flag keep their current value. The monthly
payment is recomputed and the balance is reset to the principal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()
			current, err := svc.LoanWithPayments(env.Ctx, args[0])
			if err != nil {
				return err
			}
			f.fill(cmd, current.Loan.Loan)
			if !cmd.Flags().Changed("name") {
				name = current.Loan.Name
			}
			form, err := f.form(name)
			if err != nil {
				return err
			}
			l, err := svc.UpdateLoan(env.Ctx, args[0], form)
			if err != nil {
				return err
			}
			env.Printer.Line("Updated loan %q, monthly payment %s", l.Name, env.Printer.Money(l.MonthlyPayment))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Loan name")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a loan and its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			if err := env.Container.GetLedger().DeleteLoan(env.Ctx, args[0]); err != nil {
				return err
			}
			env.Printer.Line("Deleted loan %s", args[0])
			return nil
		},
	}
}

func newPayCmd() *cobra.Command {
	var amount, date, stream string
	cmd := &cobra.Command{
		Use:   "pay ID",
		Short: "Record a loan payment",
		Long: `Record a payment against a loan. The amount defaults to the monthly payment
and the revenue stream to the loan's allocation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			svc := env.Container.GetLedger()
			if amount == "" {
				current, err := svc.LoanWithPayments(env.Ctx, args[0])
				if err != nil {
					return err
				}
				amount = current.Loan.MonthlyPayment.StringFixed(2)
			}
			when, err := common.ParseDateFlag("date", date)
			if err != nil {
				return err
			}
			result, err := svc.MakePayment(env.Ctx, args[0], ledger.PaymentForm{
				Amount:        amount,
				Date:          when,
				RevenueStream: stream,
			})
			if err != nil {
				return err
			}
			p := env.Printer
			p.Line("Paid %s on %q: %s principal, %s interest",
				p.Money(result.Payment.Amount), result.Loan.Name,
				p.Money(result.Payment.PrincipalAmount), p.Money(result.Payment.InterestAmount))
			if result.Loan.IsPaidOff() {
				p.Line("Loan %q is paid off", result.Loan.Name)
			} else {
				p.Line("Remaining balance %s, next payment due %s", p.Money(result.Loan.CurrentBalance), p.Date(result.Loan.NextPaymentDate))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Payment amount (default the monthly payment)")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (default now)")
	cmd.Flags().StringVarP(&stream, "stream", "s", "", "Revenue stream paying (default the loan's allocation)")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a loan with its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			detail, err := env.Container.GetLedger().LoanWithPayments(env.Ctx, args[0])
			if err != nil {
				return err
			}
			printDetail(env.Printer, detail, time.Now())
			return nil
		},
	}
}

func printDetail(p *common.Printer, detail ledger.LoanDetail, now time.Time) {
	l := detail.Loan
	p.Heading(l.Name)
	p.Line("Type:            %s", l.Type)
	p.Line("Principal:       %s", p.Money(l.PrincipalAmount))
	p.Line("Balance:         %s", p.Money(l.CurrentBalance))
	p.Line("Progress:        %s paid", common.Percent(l.Progress))
	p.Line("Interest rate:   %s%%", l.InterestRate.String())
	p.Line("Term:            %d months", l.TermMonths)
	p.Line("Monthly payment: %s", p.Money(l.MonthlyPayment))
	p.Line("Start date:      %s", p.Date(l.StartDate))
	if l.IsPaidOff() {
		p.Line("Status:          paid off")
	} else {
		p.Line("Next payment:    %s (in %d days)", p.Date(l.NextPaymentDate), dateutils.DaysUntil(l.NextPaymentDate, now))
	}
	if l.RevenueStreamAllocation != "" {
		p.Line("Revenue stream:  %s", l.RevenueStreamAllocation)
	}
	if l.Description != "" {
		p.Line("Description:     %s", l.Description)
	}

	p.Heading("Payments")
	if len(detail.Payments) == 0 {
		p.Muted("No payments")
		return
	}
	rows := make([][]string, 0, len(detail.Payments))
	for _, pay := range detail.Payments {
		rows = append(rows, []string{
			p.Date(pay.Date),
			p.Money(pay.Amount),
			p.Money(pay.PrincipalAmount),
			p.Money(pay.InterestAmount),
			common.OrDash(pay.RevenueStream),
		})
	}
	p.Table([]string{"DATE", "AMOUNT", "PRINCIPAL", "INTEREST", "STREAM"}, rows)
}
