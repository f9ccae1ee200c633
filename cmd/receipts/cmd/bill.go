package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/models"
)

func newBillCmd(opts *rootOptions) *cobra.Command {
	var (
		draft   billing.Draft
		items   []string
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Compose a bill, consuming stock for tracked items",
		Long: `Compose a bill from one or more --item flags of the form NAME:PRICE[:QTY].

Every tracked item is checked against stock first. If any is short the
bill is rejected with every shortage listed and nothing is written.

Example:
  receipts bill --store ACME --category Groceries --item "Rice:3:4" --item "Soap:2.5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				draft.Items = append(draft.Items, item)
			}
			if draft.Date == "" {
				draft.Date = time.Now().Format(time.DateOnly)
			}
			draft.Render = pdfPath != ""

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				if draft.Render {
					p, err := a.Profiles.Get()
					if err != nil {
						return err
					}
					draft.Profile = p
				}

				bill, err := a.Composer.Compose(cmd.Context(), draft)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Bill %d recorded: %s %.2f\n", bill.Expense.ID, bill.Expense.Store, bill.Expense.Amount)
				if bill.RenderErr != nil {
					fmt.Fprintf(out, "PDF not rendered: %v\n", bill.RenderErr)
					return nil
				}
				if bill.PDF != nil {
					if err := writeFile(pdfPath, bill.PDF); err != nil {
						return err
					}
					fmt.Fprintf(out, "PDF written to %s\n", pdfPath)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Store, "store", "", "store name")
	cmd.Flags().StringVar(&draft.Date, "date", "", "bill date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&draft.Category, "category", "", "expense category")
	cmd.Flags().Float64Var(&draft.Amount, "amount", 0, "total amount for a bill without items")
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item as NAME:PRICE[:QTY], repeatable")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the rendered bill to this file")
	return cmd
}

// parseItem reads NAME:PRICE[:QTY]. The name may itself contain colons.
func parseItem(raw string) (models.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return models.LineItem{}, fmt.Errorf("item %q: want NAME:PRICE[:QTY]", raw)
	}

	qty := 1
	last := parts[len(parts)-1]
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(last); err == nil {
			qty = n
			parts = parts[:len(parts)-1]
		}
	}

	price, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("item %q: invalid price: %w", raw, err)
	}
	name := strings.Join(parts[:len(parts)-1], ":")

	return models.LineItem{Name: name, Price: price, Quantity: qty}, nil
}
