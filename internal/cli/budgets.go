package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/report"
)

func newBudgetCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Cap monthly spending per expense category",
	}
	cmd.AddCommand(
		newBudgetListCommand(app),
		newBudgetSetCommand(app),
		newBudgetEditCommand(app),
		newBudgetRemoveCommand(app),
	)
	return cmd
}

func newBudgetListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with current-month utilization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			budgets, err := app.stores.Budgets.List(cmd.Context())
			if err != nil {
				return err
			}
			txs, err := app.stores.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			w := app.table()
			fmt.Fprintln(w, "CATEGORY\tCAP\tSPENT\tUSED\tSTATUS\tID")
			for _, status := range report.EvaluateBudgets(budgets, txs, time.Now()) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%s\t%s\n",
					status.Budget.CategoryID, vnd(status.Budget.Amount),
					vnd(status.Spent), status.Percentage, status.Tier, status.Budget.ID)
			}
			return w.Flush()
		},
	}
}

func newBudgetSetCommand(app *App) *cobra.Command {
	var (
		category string
		amount   float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create a monthly budget for an expense category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := core.Budget{CategoryID: category, Amount: amount, Period: core.PeriodMonthly}
			if err := draft.Validate(); err != nil {
				return err
			}
			cats, err := app.stores.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := core.MatchCategory(cats, category, core.Expense); err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}
			budgets, err := app.stores.Budgets.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := core.CanCreateBudget(budgets, category); err != nil {
				return err
			}
			created, err := app.stores.Budgets.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.printf("Budget %s/month on %s (%s)\n", vnd(created.Amount), category, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "expense category id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "monthly cap in VND")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBudgetEditCommand(app *App) *cobra.Command {
	var amount float64
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a budget's monthly cap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return core.ErrInvalidAmount
			}
			updated, err := app.stores.Budgets.Update(cmd.Context(), args[0], map[string]any{
				"amount": amount,
			})
			if err != nil {
				return err
			}
			app.printf("Budget on %s is now %s/month\n", updated.CategoryID, vnd(updated.Amount))
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "new monthly cap in VND")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBudgetRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.stores.Budgets.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Removed budget %s\n", args[0])
			return nil
		},
	}
}
