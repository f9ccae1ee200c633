package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/models"
)

func newExpensesCmd(opts *rootOptions) *cobra.Command {
	expenses := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"exp"},
		Short:   "Query and maintain the expense ledger",
	}
	expenses.AddCommand(
		newExpensesListCmd(opts),
		newExpensesItemsCmd(opts),
		newExpensesSummaryCmd(opts),
		newExpensesDeleteCmd(opts),
		newExpensesDeleteAllCmd(opts),
	)
	return expenses
}

func newExpensesListCmd(opts *rootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				var (
					list []*models.Expense
					err  error
				)
				if month != "" {
					list, err = a.Expenses.ForMonth(cmd.Context(), month)
				} else {
					list, err = a.Expenses.All(cmd.Context())
				}
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tDATE\tSTORE\tCATEGORY\tITEMS\tAMOUNT")
				for _, e := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\n", e.ID, e.Date, e.Store, e.Category, len(e.Items), e.Amount)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only expenses in YYYY-MM")
	return cmd
}

func newExpensesItemsCmd(opts *rootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List every line item across expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				rows, err := a.Expenses.ItemRows(cmd.Context(), month)
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "BILL\tDATE\tITEM\tPRICE\tQTY\tAMOUNT\tCATEGORY")
				for _, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%.2f\t%s\n",
						r.ExpenseID, r.Date, r.Name, r.Price, r.Quantity, r.Amount, r.Category)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only expenses in YYYY-MM")
	return cmd
}

func newExpensesSummaryCmd(opts *rootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				summary, err := a.Expenses.Summary(cmd.Context(), month)
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
				for _, c := range summary.ByCategory {
					fmt.Fprintf(tw, "%s\t%.2f\n", c.Category, c.Amount)
				}
				fmt.Fprintf(tw, "TOTAL (%d bills)\t%.2f\n", summary.Count, summary.Total)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only expenses in YYYY-MM")
	return cmd
}

func newExpensesDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				deleted, err := a.Expenses.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("expense %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Expense %d deleted\n", id)
				return nil
			})
		},
	}
}

func newExpensesDeleteAllCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every expense and restart numbering at 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all expenses without --yes")
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Expenses.DeleteAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d expenses deleted\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
