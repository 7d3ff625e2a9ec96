// Package export writes ledger records to CSV
package export

import (
	"context"
	"fmt"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/export"
	"fjacquet/misi/internal/ledger"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = NewCommand()

// NewCommand builds the export command.
func NewCommand() *cobra.Command {
	var (
		kind   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ledger records to CSV",
		Long: `Export transactions, loans, loan payments or revenue streams to CSV using the
configured delimiter. Without --output the CSV is written to standard output.
An exported transactions file can be read back with "misi transaction import".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := export.ParseKind(kind)
			if err != nil {
				return err
			}
			env, err := common.Setup(cmd)
			if err != nil {
				return err
			}
			csvc := env.Container.GetCSV()
			rows, err := collect(env.Ctx, env.Container.GetLedger(), csvc, k)
			if err != nil {
				return err
			}
			if output == "" {
				return csvc.Write(cmd.OutOrStdout(), rows)
			}
			if err := csvc.WriteFile(output, rows); err != nil {
				return err
			}
			env.Printer.Line("Exported %s to %s", k, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(export.KindTransactions), "Records to export (transactions, loans, payments, streams)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default stdout)")
	return cmd
}

func collect(ctx context.Context, svc *ledger.Service, csvc *export.CSV, kind export.Kind) (interface{}, error) {
	switch kind {
	case export.KindTransactions:
		transactions, err := svc.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return csvc.TransactionRows(transactions), nil
	case export.KindLoans:
		loans, err := svc.ListLoans(ctx)
		if err != nil {
			return nil, err
		}
		return csvc.LoanRows(loans), nil
	case export.KindPayments:
		payments, err := svc.LoanPayments(ctx, "")
		if err != nil {
			return nil, err
		}
		return csvc.PaymentRows(payments), nil
	case export.KindStreams:
		streams, err := svc.RevenueStreams(ctx)
		if err != nil {
			return nil, err
		}
		return csvc.StreamRows(streams), nil
	default:
		return nil, fmt.Errorf("unsupported export kind: %s", kind)
	}
}
