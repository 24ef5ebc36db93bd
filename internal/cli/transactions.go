package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
)

func newTransactionCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and browse income and expenses",
	}
	cmd.AddCommand(
		newTxListCommand(app),
		newTxAddCommand(app),
		newTxEditCommand(app),
		newTxRemoveCommand(app),
	)
	return cmd
}

func newTxListCommand(app *App) *cobra.Command {
	var (
		typ      string
		category string
		month    string
		search   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := app.stores.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			txs, err = filterTransactions(txs, typ, category, month, search)
			if err != nil {
				return err
			}
			sort.SliceStable(txs, func(i, j int) bool {
				return txs[i].Date.After(txs[j].Date.Time)
			})

			w := app.table()
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION\tID")
			for _, tx := range txs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.Date, tx.Type, vnd(tx.Amount), tx.CategoryID, tx.Description, tx.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (income or expense)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category id")
	cmd.Flags().StringVar(&month, "month", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&search, "search", "", "filter by description substring")
	return cmd
}

func filterTransactions(txs []core.Transaction, typ, category, month, search string) ([]core.Transaction, error) {
	var monthDate core.Date
	if month != "" {
		parsed, err := core.ParseDate(month + "-01")
		if err != nil {
			return nil, fmt.Errorf("invalid month %q, want YYYY-MM", month)
		}
		monthDate = parsed
	}
	out := txs[:0]
	for _, tx := range txs {
		if typ != "" && string(tx.Type) != typ {
			continue
		}
		if category != "" && tx.CategoryID != category {
			continue
		}
		if month != "" && !tx.Date.InMonth(monthDate.Year(), monthDate.Month()) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(search)) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func newTxAddCommand(app *App) *cobra.Command {
	var (
		typ         string
		amount      float64
		description string
		category    string
		date        string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			when := core.Today()
			if date != "" {
				parsed, err := core.ParseDate(date)
				if err != nil {
					return err
				}
				when = parsed
			}
			draft := core.Transaction{
				Type:        core.EntryType(typ),
				Amount:      amount,
				Description: description,
				CategoryID:  category,
				Date:        when,
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
			created, err := app.stores.Transactions.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.printf("Recorded %s %s (%s)\n", created.Type, vnd(created.Amount), created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(core.Expense), "income or expense")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in VND")
	cmd.Flags().StringVar(&description, "desc", "", "what the money was for")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newTxEditCommand(app *App) *cobra.Command {
	var (
		amount      float64
		description string
		category    string
		date        string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			if cmd.Flags().Changed("amount") {
				if amount < 0 {
					return core.ErrInvalidAmount
				}
				patch["amount"] = amount
			}
			if cmd.Flags().Changed("desc") {
				patch["description"] = description
			}
			if cmd.Flags().Changed("category") {
				txs, err := app.stores.Transactions.List(cmd.Context())
				if err != nil {
					return err
				}
				var current *core.Transaction
				for i := range txs {
					if txs[i].ID == args[0] {
						current = &txs[i]
						break
					}
				}
				if current == nil {
					return fmt.Errorf("transaction %q: %w", args[0], core.ErrNotFound)
				}
				cats, err := app.stores.Categories.List(cmd.Context())
				if err != nil {
					return err
				}
				if err := core.MatchCategory(cats, category, current.Type); err != nil {
					return fmt.Errorf("category %q: %w", category, err)
				}
				patch["categoryId"] = category
			}
			if cmd.Flags().Changed("date") {
				if _, err := core.ParseDate(date); err != nil {
					return err
				}
				patch["date"] = date
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to change")
			}
			updated, err := app.stores.Transactions.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			app.printf("Updated %s\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&description, "desc", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "new category id")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	return cmd
}

func newTxRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.stores.Transactions.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Removed %s\n", args[0])
			return nil
		},
	}
}
