// Package store provides the record store facade used by the CLI. A
// Store gives uniform list, create, update and remove operations over
// one collection; the backing implementation is either local JSON
// files for guests or the sync server for signed-in users.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"studentmoney/internal/core"
)

// Store is the uniform access surface for one record collection.
// Create fills in the record identity and creation timestamp; Update
// applies a shallow patch to the record with the given id; Remove
// succeeds whether or not the id exists.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, patch map[string]any) (T, error)
	Remove(ctx context.Context, id string) error
}

// Stores bundles one store per collection for a resolved identity.
type Stores struct {
	Transactions Store[core.Transaction]
	Categories   Store[core.Category]
	Budgets      Store[core.Budget]
	Goals        Store[core.Goal]
	Reminders    Store[core.Reminder]
}

// NewLocalStores builds file-backed stores rooted at dir for the given
// user. The category store seeds the default set on first access.
func NewLocalStores(dir, userID string) *Stores {
	cats := NewLocal[core.Category](dir, core.KindCategories, userID)
	cats.seed = core.DefaultCategories
	return &Stores{
		Transactions: NewLocal[core.Transaction](dir, core.KindTransactions, userID),
		Categories:   cats,
		Budgets:      NewLocal[core.Budget](dir, core.KindBudgets, userID),
		Goals:        NewLocal[core.Goal](dir, core.KindGoals, userID),
		Reminders:    NewLocal[core.Reminder](dir, core.KindReminders, userID),
	}
}

// NewRemoteStores builds server-backed stores sharing one API client.
func NewRemoteStores(client *Client) *Stores {
	return &Stores{
		Transactions: NewRemote[core.Transaction](client, core.KindTransactions),
		Categories:   NewRemote[core.Category](client, core.KindCategories),
		Budgets:      NewRemote[core.Budget](client, core.KindBudgets),
		Goals:        NewRemote[core.Goal](client, core.KindGoals),
		Reminders:    NewRemote[core.Reminder](client, core.KindReminders),
	}
}

// toMap converts a record to its wire form.
func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return m, nil
}

// fromMap converts a wire form back to a typed record.
func fromMap[T any](m map[string]any) (T, error) {
	var v T
	raw, err := json.Marshal(m)
	if err != nil {
		return v, fmt.Errorf("encoding record: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decoding record: %w", err)
	}
	return v, nil
}

func recordID(m map[string]any) string {
	id, _ := m["id"].(string)
	return id
}
