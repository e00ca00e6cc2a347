package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/mirror"
)

var (
	nowFunc = time.Now

	ErrEmptyTitle   = errors.New("a title is required")
	ErrNoteNotFound = errors.New("note not found")
)

const defaultSubject = "My Notes"

type Service interface {
	// All returns the student's own notes, most recent first.
	All() []Note
	// Add posts a new note to the student's library.
	Add(ctx context.Context, title, content, author string) (Note, error)
	// Delete removes a note from the student's library.
	Delete(ctx context.Context, id string) error
}

type service struct {
	notes *mirror.Collection[Note]
}

func NewService(notes *mirror.Collection[Note]) Service {
	return &service{notes: notes}
}

func Load(ctx context.Context, store core.KVStore, log core.Logger) Service {
	return NewService(mirror.LoadCollection[Note](ctx, store, core.KeyNotes, log))
}

func (svc *service) All() []Note { return svc.notes.Items() }

func (svc *service) Add(ctx context.Context, title, content, author string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, core.NewValidationError(ErrEmptyTitle, core.FieldError{Field: "title", Error: ErrEmptyTitle.Error()})
	}
	if author == "" {
		author = "Me"
	}
	note := Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Author:    author,
		Subject:   defaultSubject,
		CreatedAt: nowFunc(),
		Tags:      []string{},
	}
	err := svc.notes.Replace(ctx, func(notes []Note) []Note {
		return append([]Note{note}, notes...)
	})
	if err != nil {
		return Note{}, err
	}
	return note, nil
}

func (svc *service) Delete(ctx context.Context, id string) error {
	found := false
	err := svc.notes.Replace(ctx, func(notes []Note) []Note {
		kept := notes[:0:0]
		for _, n := range notes {
			if n.ID == id {
				found = true
				continue
			}
			kept = append(kept, n)
		}
		return kept
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrNoteNotFound
	}
	return nil
}
