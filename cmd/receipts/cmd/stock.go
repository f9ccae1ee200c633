package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/models"
)

func newStockCmd(opts *rootOptions) *cobra.Command {
	stock := &cobra.Command{
		Use:   "stock",
		Short: "Manage inventory",
	}
	stock.AddCommand(
		newStockAddCmd(opts),
		newStockListCmd(opts),
		newStockGetCmd(opts),
		newStockFindCmd(opts),
		newStockBarcodeCmd(opts),
	)
	return stock
}

func newStockAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME QUANTITY",
		Short: "Add stock for an item, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a whole number: %w", err)
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Inventory.Restock(cmd.Context(), args[0], qty); err != nil {
					return err
				}
				available, _, err := a.Inventory.Available(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", args[0], available)
				return nil
			})
		},
	}
}

func newStockListCmd(opts *rootOptions) *cobra.Command {
	var low bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				var (
					items []*models.InventoryItem
					err   error
				)
				if low {
					items, err = a.Inventory.LowStock(cmd.Context())
				} else {
					items, err = a.Inventory.List(cmd.Context())
				}
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "NAME\tQUANTITY\tBARCODE\t")
				for _, item := range items {
					flag := ""
					if item.Quantity <= a.Inventory.Threshold() {
						flag = "low"
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Name, item.Quantity, item.Barcode, flag)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&low, "low", false, "only items at or below the low stock threshold")
	return cmd
}

func newStockGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show the available quantity of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				qty, tracked, err := a.Inventory.Available(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !tracked {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not tracked\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", args[0], qty)
				return nil
			})
		},
	}
}

func newStockFindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find BARCODE",
		Short: "Find an item by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				item, err := a.Inventory.LookupBarcode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if item == nil {
					return errors.New("no item has barcode " + args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in stock\n", item.Name, item.Quantity)
				return nil
			})
		},
	}
}

func newStockBarcodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "barcode NAME BARCODE",
		Short: "Attach a barcode to an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Inventory.SetBarcode(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: barcode %s\n", args[0], args[1])
				return nil
			})
		},
	}
}
