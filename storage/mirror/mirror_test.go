package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/kv"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type record struct {
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()

	c := LoadCollection[record](ctx, store, "records", nopLogger{})
	if c.Len() != 0 {
		t.Fatalf("fresh collection has %d items", c.Len())
	}

	err := c.Replace(ctx, func(items []record) []record {
		return append(items, record{Name: "a"}, record{Name: "b"})
	})
	if err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	reloaded := LoadCollection[record](ctx, store, "records", nopLogger{})
	items := reloaded.Items()
	if len(items) != 2 || items[0].Name != "a" || items[1].Name != "b" {
		t.Errorf("reloaded items = %+v", items)
	}
}

func TestCollectionPersistsVersionedEnvelope(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()

	c := LoadCollection[record](ctx, store, "records", nopLogger{})
	_ = c.Replace(ctx, func(items []record) []record { return append(items, record{Name: "a"}) })

	raw, ok := store.Raw("records")
	if !ok {
		t.Fatal("nothing persisted")
	}
	var env struct {
		Version int             `json:"v"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("persisted form is not an envelope: %v", err)
	}
	if env.Version != 1 || env.Data == nil {
		t.Errorf("envelope = %+v", env)
	}
}

func TestCollectionAcceptsLegacyBareForm(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()
	store.Seed("records", `[{"name":"legacy"}]`)

	c := LoadCollection[record](ctx, store, "records", nopLogger{})
	items := c.Items()
	if len(items) != 1 || items[0].Name != "legacy" {
		t.Errorf("items = %+v", items)
	}
}

func TestCollectionCorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()
	store.Seed("records", `{not json`)

	c := LoadCollection[record](ctx, store, "records", nopLogger{})
	if c.Len() != 0 {
		t.Errorf("corrupt value yielded %d items", c.Len())
	}
}

func TestCollectionRollsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()

	c := LoadCollection[record](ctx, store, "records", nopLogger{})
	_ = c.Replace(ctx, func(items []record) []record { return append(items, record{Name: "kept"}) })

	store.SetErr = errors.New("disk full")
	err := c.Replace(ctx, func(items []record) []record { return append(items, record{Name: "lost"}) })
	if !core.IsPersistenceError(err) {
		t.Fatalf("Replace() error = %v, want persistence error", err)
	}

	items := c.Items()
	if len(items) != 1 || items[0].Name != "kept" {
		t.Errorf("in-memory state advanced past a failed write: %+v", items)
	}
}

func TestValueCoercesLegacyShape(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()
	store.Seed("profile", `{"name":"alex"}`)

	v := LoadValue[record](ctx, store, "profile", nopLogger{}, func(r record) record {
		if r.Friends == nil {
			r.Friends = []string{}
		}
		return r
	})
	val, ok := v.Get()
	if !ok {
		t.Fatal("value not present")
	}
	if val.Name != "alex" || val.Friends == nil {
		t.Errorf("coerced value = %+v", val)
	}
}

func TestValueSetRollsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()

	v := LoadValue[record](ctx, store, "profile", nopLogger{}, nil)
	if err := v.Set(ctx, record{Name: "alex"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	store.SetErr = errors.New("disk full")
	if err := v.Set(ctx, record{Name: "lexi"}); !core.IsPersistenceError(err) {
		t.Fatalf("Set() error = %v, want persistence error", err)
	}
	val, _ := v.Get()
	if val.Name != "alex" {
		t.Errorf("value advanced past a failed write: %+v", val)
	}
}

func TestValueAbsentKey(t *testing.T) {
	v := LoadValue[record](context.Background(), kv.NewInMemStore(), "profile", nopLogger{}, nil)
	if _, ok := v.Get(); ok {
		t.Error("absent key reported as present")
	}
}
