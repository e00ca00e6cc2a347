package groups

import (
	"context"
	"testing"

	"github.com/studymate/studymate/storage/kv"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestToggleJoinsThenLeaves(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()
	svc := Load(ctx, store, nopLogger{})

	joined, err := svc.Toggle(ctx, "HCI Group")
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !joined || !svc.IsJoined("HCI Group") {
		t.Error("first toggle did not join the group")
	}

	joined, err = svc.Toggle(ctx, "HCI Group")
	if err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if joined || svc.IsJoined("HCI Group") {
		t.Error("second toggle did not leave the group")
	}

	// membership survives a reload either way
	reloaded := Load(ctx, store, nopLogger{})
	if reloaded.IsJoined("HCI Group") {
		t.Error("left group still joined after reload")
	}
}

func TestToggleKeepsOtherGroups(t *testing.T) {
	ctx := context.Background()
	svc := Load(ctx, kv.NewInMemStore(), nopLogger{})

	svc.Toggle(ctx, "Statistics Group")
	svc.Toggle(ctx, "Algorithms 101")
	svc.Toggle(ctx, "Statistics Group")

	joined := svc.Joined()
	if len(joined) != 1 || joined[0] != "Algorithms 101" {
		t.Errorf("Joined() = %v, want [Algorithms 101]", joined)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query returns full directory", "", 10},
		{"case-insensitive match", "COGNIT", 2},
		{"no match", "chemistry", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Search(tt.query); len(got) != tt.want {
				t.Errorf("Search(%q) returned %d groups, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestMembers(t *testing.T) {
	members := Members("HCI Group")
	if len(members) != 6 {
		t.Fatalf("Members() returned %d students, want 6", len(members))
	}
	if members[0] != "Sheila Putri" {
		t.Errorf("Members()[0] = %q", members[0])
	}
}
