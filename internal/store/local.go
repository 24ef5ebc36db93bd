package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"studentmoney/internal/core"
)

// Local stores one collection as a JSON file under the data
// directory, one file per user and kind. Every mutation rewrites the
// whole list, which keeps the file a faithful snapshot.
type Local[T any] struct {
	mu     sync.Mutex
	dir    string
	kind   core.Kind
	userID string
	seed   func(userID string) []T
}

// NewLocal builds a file-backed store for one collection.
func NewLocal[T any](dir string, kind core.Kind, userID string) *Local[T] {
	return &Local[T]{dir: dir, kind: kind, userID: userID}
}

func (l *Local[T]) path() string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_%s.json", l.kind, l.userID))
}

// load reads the collection from disk. A missing file yields the seed
// set when one is configured, persisted so later reads agree.
func (l *Local[T]) load() ([]T, error) {
	raw, err := os.ReadFile(l.path())
	if errors.Is(err, fs.ErrNotExist) {
		if l.seed == nil {
			return []T{}, nil
		}
		list := l.seed(l.userID)
		if err := l.save(list); err != nil {
			return nil, err
		}
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.path(), err)
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.path(), err)
	}
	return list, nil
}

func (l *Local[T]) save(list []T) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", l.kind, err)
	}
	if err := os.WriteFile(l.path(), raw, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", l.path(), err)
	}
	return nil
}

func (l *Local[T]) List(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Local[T]) Create(ctx context.Context, draft T) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	list, err := l.load()
	if err != nil {
		return zero, err
	}
	m, err := toMap(draft)
	if err != nil {
		return zero, err
	}
	m["id"] = uuid.NewString()
	m["userId"] = l.userID
	m["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	created, err := fromMap[T](m)
	if err != nil {
		return zero, err
	}
	list = append(list, created)
	if err := l.save(list); err != nil {
		return zero, err
	}
	return created, nil
}

func (l *Local[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	list, err := l.load()
	if err != nil {
		return zero, err
	}
	for i, item := range list {
		m, err := toMap(item)
		if err != nil {
			return zero, err
		}
		if recordID(m) != id {
			continue
		}
		for k, v := range patch {
			if k == "id" || k == "createdAt" {
				continue
			}
			m[k] = v
		}
		updated, err := fromMap[T](m)
		if err != nil {
			return zero, err
		}
		list[i] = updated
		if err := l.save(list); err != nil {
			return zero, err
		}
		return updated, nil
	}
	return zero, fmt.Errorf("%s %q: %w", l.kind.Singular(), id, core.ErrNotFound)
}

func (l *Local[T]) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.load()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, item := range list {
		m, err := toMap(item)
		if err != nil {
			return err
		}
		if recordID(m) != id {
			kept = append(kept, item)
		}
	}
	return l.save(kept)
}
