package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"studentmoney/internal/config"
	"studentmoney/internal/session"
	"studentmoney/internal/store"
)

// App carries the state every subcommand needs: the resolved identity
// and the record stores matching it. Guests read and write local
// files; signed-in users talk to the sync server.
type App struct {
	cfg      *config.Config
	client   *store.Client
	session  *session.Manager
	identity session.Identity
	stores   *store.Stores
	out      io.Writer
}

// NewRootCommand assembles the smctl command tree.
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "smctl",
		Short: "Track student income, expenses, budgets and savings goals",
		Long: "smctl is a personal finance tracker for students. Without an " +
			"account it keeps everything in local files; sign in to sync " +
			"records through the server instead.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.initialize(cmd)
		},
	}

	root.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newPrefsCommand(app),
		newTransactionCommand(app),
		newCategoryCommand(app),
		newBudgetCommand(app),
		newGoalCommand(app),
		newReminderCommand(app),
		newOverviewCommand(app),
		newReportCommand(app),
		newExportCommand(app),
	)
	return root
}

func (a *App) initialize(cmd *cobra.Command) error {
	LoadEnvFile()
	SetupQuietLogger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	a.client = store.NewClient(cfg.APIBaseURL)
	a.client.SetTimeout(cfg.RequestTimeout)
	mgr, err := session.NewManager(cfg.DataDir, a.client)
	if err != nil {
		return err
	}
	a.session = mgr
	a.identity = mgr.Resolve(cmd.Context())
	a.bindStores()
	return nil
}

// bindStores points the record stores at the backend matching the
// current identity. Called again after login and logout.
func (a *App) bindStores() {
	if a.identity.IsGuest {
		a.stores = store.NewLocalStores(a.cfg.DataDir, session.GuestID)
	} else {
		a.stores = store.NewRemoteStores(a.client)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// table starts a tabwriter for aligned columnar output.
func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// vnd renders a monetary amount with the currency suffix.
func vnd(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + "₫"
}
