package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/extract"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "extract IMAGE",
		Short: "Read a receipt photo with Gemini",
		Long: `Read a receipt photo with Gemini and print the extracted bill as JSON.

With --commit the bill is also composed and recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				if a.Extractor == nil {
					return errors.New("receipt extraction needs GEMINI_API_KEY")
				}

				receipt, err := extract.Read(cmd.Context(), a.Extractor, extract.Image{Data: data}, time.Now())
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(receipt); err != nil {
					return err
				}

				if !commit {
					return nil
				}
				p, err := a.Profiles.Get()
				if err != nil {
					return err
				}
				bill, err := a.Composer.Compose(cmd.Context(), billing.DraftFromReceipt(receipt, p))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bill %d recorded: %.2f\n", bill.Expense.ID, bill.Expense.Amount)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "record the extracted bill")
	return cmd
}
