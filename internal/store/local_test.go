package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentmoney/internal/core"
)

func TestLocalSeedsDefaultCategories(t *testing.T) {
	dir := t.TempDir()
	stores := NewLocalStores(dir, "guest")
	ctx := context.Background()

	cats, err := stores.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 15)
	assert.True(t, cats[0].IsDefault)

	// The seed is persisted so later reads agree.
	_, err = os.Stat(filepath.Join(dir, "categories_guest.json"))
	require.NoError(t, err)

	again, err := NewLocalStores(dir, "guest").Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, cats, again)
}

func TestLocalEmptyWithoutSeed(t *testing.T) {
	stores := NewLocalStores(t.TempDir(), "guest")
	txs, err := stores.Transactions.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLocalCreateAssignsIdentity(t *testing.T) {
	stores := NewLocalStores(t.TempDir(), "guest")
	ctx := context.Background()

	created, err := stores.Transactions.Create(ctx, core.Transaction{
		Type:        core.Expense,
		Amount:      50000,
		Description: "bún chả",
		CategoryID:  "default_5",
		Date:        core.NewDate(2026, 8, 30),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "guest", created.UserID)
	assert.NotEmpty(t, created.CreatedAt)

	list, err := stores.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestLocalUpdateMergesFields(t *testing.T) {
	stores := NewLocalStores(t.TempDir(), "guest")
	ctx := context.Background()

	created, err := stores.Transactions.Create(ctx, core.Transaction{
		Type:        core.Expense,
		Amount:      50000,
		Description: "bún chả",
		CategoryID:  "default_5",
		Date:        core.NewDate(2026, 8, 30),
	})
	require.NoError(t, err)

	updated, err := stores.Transactions.Update(ctx, created.ID, map[string]any{
		"amount": 60000,
		"id":     "smuggled",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, float64(60000), updated.Amount)
	assert.Equal(t, "bún chả", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestLocalUpdateMissingID(t *testing.T) {
	stores := NewLocalStores(t.TempDir(), "guest")
	_, err := stores.Transactions.Update(context.Background(), "nope", map[string]any{"amount": 1})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLocalRemoveIsIdempotent(t *testing.T) {
	stores := NewLocalStores(t.TempDir(), "guest")
	ctx := context.Background()

	created, err := stores.Goals.Create(ctx, core.Goal{
		Name:         "Laptop mới",
		TargetAmount: 20000000,
		Deadline:     core.NewDate(2026, 12, 31),
	})
	require.NoError(t, err)

	require.NoError(t, stores.Goals.Remove(ctx, created.ID))
	require.NoError(t, stores.Goals.Remove(ctx, created.ID))

	goals, err := stores.Goals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestLocalStoresIsolatedPerUser(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a := NewLocalStores(dir, "guest")
	b := NewLocalStores(dir, "other")

	_, err := a.Budgets.Create(ctx, core.Budget{CategoryID: "default_5", Amount: 1000000, Period: core.PeriodMonthly})
	require.NoError(t, err)

	got, err := b.Budgets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadAllReportsEmptyOnFailure(t *testing.T) {
	dir := t.TempDir()
	stores := NewLocalStores(dir, "guest")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions_guest.json"), []byte("{broken"), 0o600))

	snap, err := stores.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions)
	assert.Len(t, snap.Categories, 15)
}
