package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the store profile printed on bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				p, err := a.Profiles.Get()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Store: %s\nGSTIN: %s\n", p.StoreName, p.GSTNumber)
				return nil
			})
		},
	}

	var name, gst string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update the store profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				p, err := a.Profiles.Get()
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("name") {
					p.StoreName = name
				}
				if cmd.Flags().Changed("gst") {
					p.GSTNumber = gst
				}
				if err := a.Profiles.Update(p); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Store profile updated")
				return nil
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "store name")
	set.Flags().StringVar(&gst, "gst", "", "GST number")
	profile.AddCommand(set)
	return profile
}
