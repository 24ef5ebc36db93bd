package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategorySeed(t *testing.T) {
	cats := DefaultCategories("guest")
	require.Len(t, cats, 15)

	var income, expense int
	for _, c := range cats {
		require.True(t, c.IsDefault)
		require.Equal(t, "guest", c.UserID)
		switch c.Type {
		case Income:
			income++
		case Expense:
			expense++
		}
	}
	assert.Equal(t, 5, income)
	assert.Equal(t, 10, expense)
	assert.Equal(t, "default_0", cats[0].ID)
	assert.Equal(t, "default_14", cats[14].ID)
}

func TestCanDeleteCategory(t *testing.T) {
	def := Category{ID: "default_0", IsDefault: true}
	assert.ErrorIs(t, CanDeleteCategory(def, nil), ErrDefaultCategory)

	custom := Category{ID: "c1"}
	txs := []Transaction{{ID: "t1", CategoryID: "c1"}}
	assert.ErrorIs(t, CanDeleteCategory(custom, txs), ErrCategoryInUse)
	assert.NoError(t, CanDeleteCategory(custom, []Transaction{{ID: "t2", CategoryID: "c2"}}))
	assert.NoError(t, CanDeleteCategory(custom, nil))
}

func TestCanCreateBudget(t *testing.T) {
	budgets := []Budget{{ID: "b1", CategoryID: "food"}}
	assert.ErrorIs(t, CanCreateBudget(budgets, "food"), ErrDuplicateBudget)
	assert.NoError(t, CanCreateBudget(budgets, "rent"))
	assert.NoError(t, CanCreateBudget(nil, "food"))
}

func TestMatchCategory(t *testing.T) {
	cats := []Category{
		{ID: "c1", Type: Income},
		{ID: "c2", Type: Expense},
	}
	assert.NoError(t, MatchCategory(cats, "c1", Income))
	assert.ErrorIs(t, MatchCategory(cats, "c1", Expense), ErrCategoryMismatch)
	assert.ErrorIs(t, MatchCategory(cats, "missing", Income), ErrNotFound)
}

func TestValidateFunds(t *testing.T) {
	assert.NoError(t, ValidateFunds(0.01))
	assert.ErrorIs(t, ValidateFunds(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateFunds(-100), ErrInvalidAmount)
}
