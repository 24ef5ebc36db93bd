package cli

import (
	"github.com/spf13/cobra"

	"studentmoney/internal/auth"
)

func newRegisterCommand(app *App) *cobra.Command {
	var req auth.Signup
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the sync server and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			id, err := app.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.identity = id
			app.bindStores()
			app.printf("Signed in as %s <%s>\n", id.Name, id.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the sync server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			app.identity = id
			app.bindStores()
			app.printf("Signed in as %s <%s>\n", id.Name, id.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and return to the local guest workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			app.identity = app.session.Resolve(cmd.Context())
			app.bindStores()
			app.printf("Signed out. Working as %s.\n", app.identity.Name)
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the acting identity and preferences",
		RunE: func(_ *cobra.Command, _ []string) error {
			id := app.identity
			mode := "synced"
			if id.IsGuest {
				mode = "local"
			}
			app.printf("%s <%s>\n", id.Name, id.Email)
			app.printf("mode: %s\n", mode)
			prefs := app.session.Prefs()
			app.printf("theme: %s\nlanguage: %s\n", prefs.Theme, prefs.Language)
			return nil
		},
	}
}

func newPrefsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change local preferences",
		RunE: func(_ *cobra.Command, _ []string) error {
			prefs := app.session.Prefs()
			app.printf("theme: %s\nlanguage: %s\n", prefs.Theme, prefs.Language)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set theme or language",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.session.SetPref(args[0], args[1]); err != nil {
				return err
			}
			app.printf("%s = %s\n", args[0], args[1])
			return nil
		},
	})
	return cmd
}
