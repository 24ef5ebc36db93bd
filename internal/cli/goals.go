package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
	"studentmoney/internal/report"
)

func newGoalCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Save toward targets with deadlines",
	}
	cmd.AddCommand(
		newGoalListCommand(app),
		newGoalAddCommand(app),
		newGoalAddFundsCommand(app),
		newGoalRemoveCommand(app),
	)
	return cmd
}

func newGoalListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress and time remaining",
		RunE: func(cmd *cobra.Command, _ []string) error {
			goals, err := app.stores.Goals.List(cmd.Context())
			if err != nil {
				return err
			}
			today := core.Today()
			w := app.table()
			fmt.Fprintln(w, "NAME\tSAVED\tTARGET\tPROGRESS\tDEADLINE\tDAYS LEFT\tID")
			for _, g := range goals {
				status := report.EvaluateGoal(g, today)
				progress := fmt.Sprintf("%.1f%%", status.Progress)
				if status.Completed {
					progress = "done"
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					g.Icon, g.Name, vnd(g.CurrentAmount), vnd(g.TargetAmount),
					progress, g.Deadline, status.DaysLeft, g.ID)
			}
			return w.Flush()
		},
	}
}

func newGoalAddCommand(app *App) *cobra.Command {
	var (
		name     string
		icon     string
		target   float64
		deadline string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			due, err := core.ParseDate(deadline)
			if err != nil {
				return err
			}
			draft := core.Goal{Name: name, Icon: icon, TargetAmount: target, Deadline: due}
			if err := draft.Validate(); err != nil {
				return err
			}
			created, err := app.stores.Goals.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.printf("Goal %s %s: %s by %s (%s)\n",
				created.Icon, created.Name, vnd(created.TargetAmount), created.Deadline, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "goal name")
	cmd.Flags().StringVar(&icon, "icon", "🎯", "display icon")
	cmd.Flags().Float64Var(&target, "target", 0, "target amount in VND")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newGoalAddFundsCommand(app *App) *cobra.Command {
	var amount float64
	cmd := &cobra.Command{
		Use:   "add-funds <id>",
		Short: "Put money toward a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.ValidateFunds(amount); err != nil {
				return err
			}
			goals, err := app.stores.Goals.List(cmd.Context())
			if err != nil {
				return err
			}
			var current *core.Goal
			for i := range goals {
				if goals[i].ID == args[0] {
					current = &goals[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("goal %q: %w", args[0], core.ErrNotFound)
			}
			updated, err := app.stores.Goals.Update(cmd.Context(), args[0], map[string]any{
				"currentAmount": current.CurrentAmount + amount,
			})
			if err != nil {
				return err
			}
			app.printf("%s: %s of %s saved\n",
				updated.Name, vnd(updated.CurrentAmount), vnd(updated.TargetAmount))
			if updated.Completed() {
				app.printf("Goal reached!\n")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to add in VND")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newGoalRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.stores.Goals.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Removed goal %s\n", args[0])
			return nil
		},
	}
}
