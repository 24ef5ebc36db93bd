package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/report"
	"studentmoney/internal/store"
)

func newOverviewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show balance, this month's figures, budget health and upcoming reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.stores.LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			totals := report.Sum(snap.Transactions)
			app.printf("Balance: %s\n", vnd(totals.Balance()))

			monthly := report.SumInMonth(snap.Transactions, time.Now())
			app.printf("This month: +%s  -%s  (savings rate %.1f%%)\n",
				vnd(monthly.Income), vnd(monthly.Expense), monthly.SavingsRate())

			printBudgetAlerts(app, snap)
			printUpcomingReminders(app, snap)
			printActiveGoals(app, snap)
			return nil
		},
	}
}

func printBudgetAlerts(app *App, snap *store.Snapshot) {
	statuses := report.EvaluateBudgets(snap.Budgets, snap.Transactions, time.Now())
	var flagged []report.BudgetStatus
	for _, s := range statuses {
		if s.Tier != report.TierSafe {
			flagged = append(flagged, s)
		}
	}
	if len(flagged) == 0 {
		return
	}
	app.printf("\nBudget alerts:\n")
	for _, s := range flagged {
		app.printf("  %s: %s of %s used (%.1f%%, %s)\n",
			s.Budget.CategoryID, vnd(s.Spent), vnd(s.Budget.Amount), s.Percentage, s.Tier)
	}
}

func printUpcomingReminders(app *App, snap *store.Snapshot) {
	today := core.Today()
	type upcoming struct {
		reminder core.Reminder
		next     core.Date
	}
	var items []upcoming
	for _, r := range snap.Reminders {
		if !r.Enabled {
			continue
		}
		items = append(items, upcoming{r, report.NextOccurrence(r.DayOfMonth, today)})
	}
	if len(items) == 0 {
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].next.Before(items[j].next.Time)
	})
	app.printf("\nUpcoming:\n")
	for _, item := range items {
		app.printf("  %s: %s (%s)\n", item.next, item.reminder.Title, vnd(item.reminder.Amount))
	}
}

func printActiveGoals(app *App, snap *store.Snapshot) {
	if len(snap.Goals) == 0 {
		return
	}
	today := core.Today()
	app.printf("\nGoals:\n")
	for _, g := range snap.Goals {
		status := report.EvaluateGoal(g, today)
		suffix := fmt.Sprintf("%d days left", status.DaysLeft)
		if status.Completed {
			suffix = "reached"
		}
		app.printf("  %s %s: %.1f%% (%s)\n", g.Icon, g.Name, status.Progress, suffix)
	}
}
