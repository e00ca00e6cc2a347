package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/studymate/studymate/storage/kv"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestAddPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := Load(ctx, kv.NewInMemStore(), nopLogger{})

	if _, err := svc.Add(ctx, "Graph theory recap", "BFS vs DFS", "Alex"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	second, err := svc.Add(ctx, "Calculus cheatsheet", "", "Alex")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	all := svc.All()
	if len(all) != 2 {
		t.Fatalf("len(All()) = %d, want 2", len(all))
	}
	if all[0].ID != second.ID {
		t.Errorf("newest note is not first: %+v", all)
	}
	if all[0].Subject != "My Notes" {
		t.Errorf("Subject = %q, want %q", all[0].Subject, "My Notes")
	}
}

func TestAddSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemStore()
	svc := Load(ctx, store, nopLogger{})

	note, err := svc.Add(ctx, "Graph theory recap", "BFS vs DFS", "Alex")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	reloaded := Load(ctx, store, nopLogger{})
	all := reloaded.All()
	if len(all) != 1 || all[0].ID != note.ID || all[0].Author != "Alex" {
		t.Errorf("reloaded notes = %+v", all)
	}
}

func TestDeleteUnknownNote(t *testing.T) {
	ctx := context.Background()
	svc := Load(ctx, kv.NewInMemStore(), nopLogger{})
	if err := svc.Delete(ctx, "nope"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrNoteNotFound", err)
	}
}

func TestSearchCatalog(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query returns all", "", 5},
		{"matches title", "matlab", 1},
		{"matches author case-insensitively", "MIRA", 1},
		{"no match", "quantum", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchCatalog(tt.query); len(got) != tt.want {
				t.Errorf("SearchCatalog(%q) returned %d notes, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestFriendLibraryGatesOnFriendship(t *testing.T) {
	if got := FriendLibrary(nil); len(got) != 0 {
		t.Errorf("FriendLibrary(no friends) = %+v, want empty", got)
	}
	got := FriendLibrary([]string{"Sheila Putri", "Nia Ramadhani"})
	if len(got) != 2 {
		t.Fatalf("FriendLibrary() returned %d notes, want 2", len(got))
	}
	if got[0].Author != "Sheila Putri" || got[1].Author != "Nia Ramadhani" {
		t.Errorf("FriendLibrary() authors = %q, %q", got[0].Author, got[1].Author)
	}
}
