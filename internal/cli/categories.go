package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentmoney/internal/core"
)

func newCategoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage transaction categories",
	}
	cmd.AddCommand(
		newCategoryListCommand(app),
		newCategoryAddCommand(app),
		newCategoryEditCommand(app),
		newCategoryRemoveCommand(app),
	)
	return cmd
}

func newCategoryListCommand(app *App) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := app.stores.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			w := app.table()
			fmt.Fprintln(w, "ICON\tNAME\tTYPE\tDEFAULT\tID")
			for _, c := range cats {
				if typ != "" && string(c.Type) != typ {
					continue
				}
				def := ""
				if c.IsDefault {
					def = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Icon, c.Name, c.Type, def, c.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (income or expense)")
	return cmd
}

func newCategoryAddCommand(app *App) *cobra.Command {
	var (
		name string
		typ  string
		icon string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a custom category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := core.Category{Name: name, Type: core.EntryType(typ), Icon: icon}
			if err := draft.Validate(); err != nil {
				return err
			}
			created, err := app.stores.Categories.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.printf("Created category %s %s (%s)\n", created.Icon, created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&typ, "type", string(core.Expense), "income or expense")
	cmd.Flags().StringVar(&icon, "icon", "📌", "display icon")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// findCategory loads the category list and picks the one with the
// given id.
func findCategory(app *App, cmd *cobra.Command, id string) (core.Category, error) {
	cats, err := app.stores.Categories.List(cmd.Context())
	if err != nil {
		return core.Category{}, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, fmt.Errorf("category %q: %w", id, core.ErrNotFound)
}

func newCategoryEditCommand(app *App) *cobra.Command {
	var (
		name string
		icon string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a custom category or change its icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := findCategory(app, cmd, args[0])
			if err != nil {
				return err
			}
			if cat.IsDefault {
				return core.ErrDefaultCategory
			}
			patch := map[string]any{}
			if cmd.Flags().Changed("name") {
				patch["name"] = name
			}
			if cmd.Flags().Changed("icon") {
				patch["icon"] = icon
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to change")
			}
			updated, err := app.stores.Categories.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			app.printf("Updated category %s %s\n", updated.Icon, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")
	return cmd
}

func newCategoryRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := findCategory(app, cmd, args[0])
			if err != nil {
				return err
			}
			txs, err := app.stores.Transactions.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := core.CanDeleteCategory(cat, txs); err != nil {
				return err
			}
			if err := app.stores.Categories.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.printf("Removed category %s\n", cat.Name)
			return nil
		},
	}
}
