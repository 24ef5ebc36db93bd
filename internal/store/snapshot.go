package store

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"studentmoney/internal/core"
)

// Snapshot holds every collection loaded at one point in time.
type Snapshot struct {
	Transactions []core.Transaction
	Categories   []core.Category
	Budgets      []core.Budget
	Goals        []core.Goal
	Reminders    []core.Reminder
}

// LoadAll fetches the five collections concurrently. A collection
// that fails to load is reported as empty so one unreachable list
// does not take down the whole view; the failure is logged.
func (s *Stores) LoadAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Transactions = loadOr(ctx, s.Transactions, core.KindTransactions)
		return nil
	})
	g.Go(func() error {
		snap.Categories = loadOr(ctx, s.Categories, core.KindCategories)
		return nil
	})
	g.Go(func() error {
		snap.Budgets = loadOr(ctx, s.Budgets, core.KindBudgets)
		return nil
	})
	g.Go(func() error {
		snap.Goals = loadOr(ctx, s.Goals, core.KindGoals)
		return nil
	})
	g.Go(func() error {
		snap.Reminders = loadOr(ctx, s.Reminders, core.KindReminders)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func loadOr[T any](ctx context.Context, st Store[T], kind core.Kind) []T {
	list, err := st.List(ctx)
	if err != nil {
		slog.Warn("failed to load collection", "kind", kind, "error", err)
		return []T{}
	}
	return list
}
