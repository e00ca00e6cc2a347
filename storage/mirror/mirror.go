// Package mirror keeps in-memory application state consistent with the
// durable store: each Collection or Value is the single mutation path for one
// persisted key. Mutations are functional, persisted before the in-memory
// state is swapped, and rolled back (by never swapping) when the store fails.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/studymate/studymate/core"
)

// currentVersion tags the persisted envelope. Version 0 is the legacy bare
// form (no envelope), still accepted on load and upgraded on next save.
const currentVersion = 1

type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

func encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(envelope{Version: currentVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decode unmarshals a persisted value into out, accepting both the versioned
// envelope and the legacy bare form.
func decode(raw string, out interface{}) error {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Version > 0 && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal([]byte(raw), out)
}

// Collection mirrors an ordered in-memory collection to one store key.
type Collection[T any] struct {
	mu    sync.RWMutex
	store core.KVStore
	key   string
	log   core.Logger
	items []T
}

// LoadCollection reads the persisted collection. An absent key yields an
// empty collection; malformed persisted data degrades to empty with a logged
// anomaly rather than failing the whole session.
func LoadCollection[T any](ctx context.Context, store core.KVStore, key string, log core.Logger) *Collection[T] {
	c := &Collection[T]{store: store, key: key, log: log}
	raw, err := store.Get(ctx, key)
	if err == core.ErrKeyNotFound || raw == "" {
		return c
	}
	if err != nil {
		log.Warn(fmt.Sprintf("loading %q: %v; starting empty", key, err), err)
		return c
	}
	var items []T
	if err := decode(raw, &items); err != nil {
		log.Warn(fmt.Sprintf("corrupt persisted value under %q: %v; starting empty", key, err), err)
		return c
	}
	c.items = items
	return c
}

// Items returns a snapshot copy of the collection.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace computes the next collection state from a snapshot of the current
// one and persists it. The in-memory state only advances if the store write
// succeeds; on failure the prior state is kept and a PersistenceError returned.
func (c *Collection[T]) Replace(ctx context.Context, fn func(items []T) []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	next := fn(snapshot)

	raw, err := encode(next)
	if err != nil {
		return core.NewPersistenceError(c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return core.NewPersistenceError(c.key, err)
	}
	c.items = next
	return nil
}

// Value mirrors a single in-memory record to one store key.
type Value[T any] struct {
	mu      sync.RWMutex
	store   core.KVStore
	key     string
	log     core.Logger
	val     T
	present bool
}

// LoadValue reads the persisted value, applying coerce (if non-nil) to
// normalize legacy shapes to the current one.
func LoadValue[T any](ctx context.Context, store core.KVStore, key string, log core.Logger, coerce func(T) T) *Value[T] {
	v := &Value[T]{store: store, key: key, log: log}
	raw, err := store.Get(ctx, key)
	if err == core.ErrKeyNotFound || raw == "" {
		return v
	}
	if err != nil {
		log.Warn(fmt.Sprintf("loading %q: %v; starting empty", key, err), err)
		return v
	}
	var val T
	if err := decode(raw, &val); err != nil {
		log.Warn(fmt.Sprintf("corrupt persisted value under %q: %v; starting empty", key, err), err)
		return v
	}
	if coerce != nil {
		val = coerce(val)
	}
	v.val = val
	v.present = true
	return v
}

func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val, v.present
}

// Set persists the new value, then swaps it in; the prior value is kept on
// store failure.
func (v *Value[T]) Set(ctx context.Context, val T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, err := encode(val)
	if err != nil {
		return core.NewPersistenceError(v.key, err)
	}
	if err := v.store.Set(ctx, v.key, raw); err != nil {
		return core.NewPersistenceError(v.key, err)
	}
	v.val = val
	v.present = true
	return nil
}
