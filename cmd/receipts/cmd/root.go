// Package cmd provides CLI commands for the receipts tracker.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/auth"
	"github.com/mmynk/receipts/internal/config"
	"github.com/mmynk/receipts/pkg/logging"
)

type rootOptions struct {
	envFile string
	debug   bool
	cfg     config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "receipts",
		Short: "Track expenses, stock and bills",
		Long: `receipts manages a shop's expense ledger and inventory from the
command line, using the same database as the receipts server.

Example:
  receipts init
  receipts stock add Rice 10
  receipts bill --store ACME --item "Rice:3:4"
  receipts report --month 2024-06 --out june.pdf`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if opts.envFile != "" {
				files = append(files, opts.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if opts.debug {
				cfg.LogLevel = "debug"
			}
			logging.Configure(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "config", "", "env file (default is .env)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(opts),
		newStockCmd(opts),
		newBillCmd(opts),
		newExpensesCmd(opts),
		newReportCmd(opts),
		newExtractCmd(opts),
		newProfileCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// withApp opens the application for the duration of fn.
func (o *rootOptions) withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := app.New(ctx, o.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Failed to close", "error", err)
		}
	}()
	return fn(a)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and apply migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", a.Store.Path())
				return nil
			})
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for RECEIPTS_ADMIN_PASSWORD_HASH",
		Long: `Print a bcrypt hash for RECEIPTS_ADMIN_PASSWORD_HASH.

The password is read from the first argument, or from stdin when omitted.`,
		Args: cobra.MaximumNArgs(1),
		// No config or database needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecret(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func readSecret(r io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil {
		return "", err
	}
	return trimNewline(string(data)), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
