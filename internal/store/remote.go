package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"studentmoney/internal/core"
)

// Remote stores one collection on the sync server. The server owns
// record identity and timestamps; responses arrive wrapped in an
// envelope keyed by the collection name.
type Remote[T any] struct {
	client *Client
	kind   core.Kind
}

// NewRemote builds a server-backed store for one collection.
func NewRemote[T any](client *Client, kind core.Kind) *Remote[T] {
	return &Remote[T]{client: client, kind: kind}
}

func (r *Remote[T]) List(ctx context.Context) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := r.client.Do(ctx, http.MethodGet, "/"+string(r.kind), nil, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[r.kind.Plural()]
	if !ok {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", r.kind, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func (r *Remote[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	m, err := toMap(draft)
	if err != nil {
		return zero, err
	}
	delete(m, "id")
	delete(m, "createdAt")
	out, err := r.roundTrip(ctx, http.MethodPost, "/"+string(r.kind), m)
	if err != nil {
		return zero, err
	}
	return out, nil
}

func (r *Remote[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	return r.roundTrip(ctx, http.MethodPut, fmt.Sprintf("/%s/%s", r.kind, id), patch)
}

func (r *Remote[T]) Remove(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%s", r.kind, id), nil, nil)
}

// roundTrip sends a mutation and unwraps the singular envelope.
func (r *Remote[T]) roundTrip(ctx context.Context, method, path string, body any) (T, error) {
	var zero T
	var envelope map[string]json.RawMessage
	if err := r.client.Do(ctx, method, path, body, &envelope); err != nil {
		return zero, err
	}
	raw, ok := envelope[r.kind.Singular()]
	if !ok {
		return zero, fmt.Errorf("response missing %s payload", r.kind.Singular())
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decoding %s: %w", r.kind.Singular(), err)
	}
	return out, nil
}
