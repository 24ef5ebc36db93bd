package cli

import (
	"os"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/export"
)

func newExportCommand(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.stores.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = export.FileName(core.Today())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.TransactionsCSV(f, snap.Transactions, snap.Categories); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			app.printf("Wrote %d transactions to %s\n", len(snap.Transactions), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default transactions_<today>.csv)")
	return cmd
}
