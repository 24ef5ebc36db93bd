package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/report"
)

func newReminderCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Keep a schedule of recurring payments and income",
	}
	cmd.AddCommand(
		newReminderListCommand(app),
		newReminderAddCommand(app),
		newReminderToggleCommand(app),
		newReminderRemoveCommand(app),
	)
	return cmd
}

func newReminderListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders with their next occurrence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reminders, err := app.stores.Reminders.List(cmd.Context())
			if err != nil {
				return err
			}
			today := core.Today()
			w := app.table()
			fmt.Fprintln(w, "TITLE\tTYPE\tAMOUNT\tDAY\tNEXT\tENABLED\tID")
			for _, r := range reminders {
				next := report.NextOccurrence(r.DayOfMonth, today)
				enabled := "no"
				if r.Enabled {
					enabled = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					r.Title, r.Type, vnd(r.Amount), r.DayOfMonth, next, enabled, r.ID)
			}
			return w.Flush()
		},
	}
}

func newReminderAddCommand(app *App) *cobra.Command {
	var (
		title    string
		typ      string
		category string
		amount   float64
		day      int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a monthly reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := core.Reminder{
				Title:      title,
				Type:       core.EntryType(typ),
				CategoryID: category,
				Amount:     amount,
				Frequency:  core.PeriodMonthly,
				DayOfMonth: day,
				Enabled:    true,
			}
			if err := draft.Validate(); err != nil {
				return err
			}
			cats, err := app.stores.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := core.MatchCategory(cats, category, draft.Type); err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}
			created, err := app.stores.Reminders.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			next := report.NextOccurrence(created.DayOfMonth, core.Today())
			app.printf("Reminder %q on day %d, next %s (%s)\n",
				created.Title, created.DayOfMonth, next, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "reminder title")
	cmd.Flags().StringVar(&typ, "type", string(core.Expense), "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "expected amount in VND")
	cmd.Flags().IntVar(&day, "day", 1, "day of month (1-31)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newReminderToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders, err := app.stores.Reminders.List(cmd.Context())
			if err != nil {
				return err
			}
			var current *core.Reminder
			for i := range reminders {
				if reminders[i].ID == args[0] {
					current = &reminders[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("reminder %q: %w", args[0], core.ErrNotFound)
			}
			updated, err := app.stores.Reminders.Update(cmd.Context(), args[0], map[string]any{
				"enabled": !current.Enabled,
			})
			if err != nil {
				return err
			}
			state := "disabled"
			if updated.Enabled {
				state = "enabled"
			}
			app.printf("Reminder %q %s\n", updated.Title, state)
			return nil
		},
	}
}

func newReminderRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.stores.Reminders.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Removed reminder %s\n", args[0])
			return nil
		},
	}
}
