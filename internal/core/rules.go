package core

import "errors"

// Preconditions the record stores do not enforce themselves. Callers check
// these before mutating, the same way the forms in the web client do.

var (
	ErrDefaultCategory  = errors.New("default categories cannot be changed or deleted")
	ErrCategoryInUse    = errors.New("category is referenced by transactions")
	ErrDuplicateBudget  = errors.New("category already has a budget")
	ErrCategoryMismatch = errors.New("category type does not match")
)

// CanDeleteCategory rejects deletion of default categories and of categories
// still referenced by at least one transaction.
func CanDeleteCategory(cat Category, txs []Transaction) error {
	if cat.IsDefault {
		return ErrDefaultCategory
	}
	for _, tx := range txs {
		if tx.CategoryID == cat.ID {
			return ErrCategoryInUse
		}
	}
	return nil
}

// CanCreateBudget rejects a second budget for a category that already
// has one.
func CanCreateBudget(budgets []Budget, categoryID string) error {
	for _, b := range budgets {
		if b.CategoryID == categoryID {
			return ErrDuplicateBudget
		}
	}
	return nil
}

// MatchCategory verifies that the referenced category exists and carries the
// expected entry type.
func MatchCategory(cats []Category, categoryID string, typ EntryType) error {
	for _, c := range cats {
		if c.ID == categoryID {
			if c.Type != typ {
				return ErrCategoryMismatch
			}
			return nil
		}
	}
	return ErrNotFound
}

// ValidateFunds checks the add-funds amount for a goal. Only strictly
// positive amounts are accepted.
func ValidateFunds(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
