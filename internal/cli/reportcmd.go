package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/report"
)

func newReportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Break down income and spending over time",
	}
	cmd.AddCommand(
		newReportDailyCommand(app),
		newReportTrendCommand(app),
		newReportCategoriesCommand(app),
	)
	return cmd
}

func newReportDailyCommand(app *App) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily income and expense totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch days {
			case 7, 30, 365:
			default:
				return fmt.Errorf("unsupported window %d: use 7, 30 or 365 days", days)
			}
			txs, err := app.stores.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			w := app.table()
			fmt.Fprintln(w, "DATE\tINCOME\tEXPENSE")
			for _, p := range report.DailySeries(txs, days, core.Today()) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date, vnd(p.Income), vnd(p.Expense))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "window length: 7, 30 or 365")
	return cmd
}

func newReportTrendCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Twelve-month income, expense and balance trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := app.stores.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			w := app.table()
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSE\tBALANCE")
			for _, p := range report.MonthlyTrend(txs, 12, core.Today()) {
				fmt.Fprintf(w, "%04d-%02d\t%s\t%s\t%s\n",
					p.Year, int(p.Month), vnd(p.Income), vnd(p.Expense), vnd(p.Balance()))
			}
			return w.Flush()
		},
	}
}

func newReportCategoriesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Top spending categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.stores.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			shares := report.CategoryDistribution(snap.Transactions, snap.Categories)
			if len(shares) == 0 {
				app.printf("No expenses recorded yet.\n")
				return nil
			}
			w := app.table()
			fmt.Fprintln(w, "CATEGORY\tSPENT\tSHARE")
			for _, s := range shares {
				fmt.Fprintf(w, "%s %s\t%s\t%.1f%%\n", s.Icon, s.Name, vnd(s.Value), s.Percentage)
			}
			return w.Flush()
		},
	}
}
