// Package report renders the ledger overview as JSON, YAML or PDF
package report

import (
	"fmt"
	"os"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"
	"fjacquet/misi/internal/report"
	"fjacquet/misi/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = NewCommand()

// NewCommand builds the report command.
func NewCommand() *cobra.Command {
	var (
		format string
		output string
		recent int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a ledger report",
		Long: `Generate a report of the whole ledger: the financial summary, every revenue
stream with its allocated expenses, the loans and the most recent
transactions. JSON and YAML go to standard output unless --output is set;
a PDF statement always needs --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.IsValidReportFormat(format); err != nil {
				return err
			}
			if format == report.FormatPDF && output == "" {
				return fmt.Errorf("--output is required for pdf reports")
			}

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
			data, err := env.Container.GetReportGenerator().Generate(overview, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := validation.PrepareOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, models.PermissionReportFile); err != nil {
				return fmt.Errorf("error writing report: %w", err)
			}
			env.Container.GetLogger().Info("Wrote report",
				logging.Field{Key: logging.FieldOutputFile, Value: output},
				logging.Field{Key: logging.FieldFormat, Value: format})
			env.Printer.Line("Wrote %s report to %s", format, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatJSON, "Report format (json, yaml, pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "Number of recent transactions (default from config)")
	return cmd
}
