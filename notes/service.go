// Package notes implements owner-scoped note operations and listing.
package notes

import (
	"context"
	"time"

	"github.com/oliverisaac/notekeeper/auth"
	"github.com/oliverisaac/notekeeper/store"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type noteStore interface {
	FindNote(ctx context.Context, id, ownerID uint) (types.Note, error)
	QueryNotes(ctx context.Context, filter store.NoteFilter, sort store.NoteSort, offset, limit int) ([]types.Note, error)
	CountNotes(ctx context.Context, filter store.NoteFilter) (int64, error)
	CreateNote(ctx context.Context, note *types.Note) error
	SaveNote(ctx context.Context, note *types.Note) error
	DeleteNote(ctx context.Context, id, ownerID uint) error
}

type Service struct {
	store noteStore
	now   func() time.Time
}

func NewService(s noteStore) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, owner *types.User, title, content string) (types.Note, error) {
	if owner == nil || !owner.IsSet() {
		return types.Note{}, errors.Wrap(types.ErrUnauthenticated, "You must be logged in to create a note")
	}

	note := types.NewNoteForUser(title, content, *owner, s.now())
	if err := s.store.CreateNote(ctx, &note); err != nil {
		return types.Note{}, err
	}

	logrus.WithFields(logrus.Fields{"user_id": owner.ID, "note_id": note.ID}).Info("Created note")
	return note, nil
}

func (s *Service) Read(ctx context.Context, owner *types.User, id uint) (types.Note, error) {
	return s.find(ctx, owner, id)
}

// Patch overwrites the fields present in patch. Callers reject empty patches
// before getting here.
func (s *Service) Patch(ctx context.Context, owner *types.User, id uint, patch types.NotePatch) (types.Note, error) {
	note, err := s.find(ctx, owner, id)
	if err != nil {
		return types.Note{}, err
	}

	patch.Apply(&note)
	if err := s.store.SaveNote(ctx, &note); err != nil {
		return types.Note{}, err
	}

	logrus.WithFields(logrus.Fields{"user_id": owner.ID, "note_id": note.ID}).Info("Patched note")
	return note, nil
}

func (s *Service) Delete(ctx context.Context, owner *types.User, id uint) error {
	note, err := s.find(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteNote(ctx, note.ID, owner.ID); err != nil {
		return errors.Wrapf(err, "Deleting note %d", id)
	}

	logrus.WithFields(logrus.Fields{"user_id": owner.ID, "note_id": note.ID}).Info("Deleted note")
	return nil
}

// find loads a note visible to owner. Missing, foreign and anonymous lookups
// all fail with types.ErrNotFound.
func (s *Service) find(ctx context.Context, owner *types.User, id uint) (types.Note, error) {
	if owner == nil || !owner.IsSet() {
		return types.Note{}, errors.Wrapf(types.ErrNotFound, "No note found for id %d", id)
	}

	note, err := s.store.FindNote(ctx, id, owner.ID)
	if err != nil {
		return types.Note{}, errors.Wrapf(err, "No note found for id %d", id)
	}
	if !auth.OwnsNote(owner, note) {
		return types.Note{}, errors.Wrapf(types.ErrNotFound, "No note found for id %d", id)
	}
	return note, nil
}
