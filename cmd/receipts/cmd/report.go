package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var month, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a monthly expense report as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("month must be YYYY-MM, got %q", month)
			}
			if out == "" {
				out = "expenses-" + month + ".pdf"
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				expenses, err := a.Expenses.ForMonth(cmd.Context(), month)
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				if err := a.Renderer.RenderMonthly(&buf, "Expenses "+month, expenses); err != nil {
					return err
				}
				if err := writeFile(out, buf.Bytes()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report for %s (%d expenses) written to %s\n", month, len(expenses), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default expenses-MONTH.pdf)")
	return cmd
}
