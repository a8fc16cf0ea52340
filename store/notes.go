package store

import (
	"context"
	errs "errors"

	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteFilter is the predicate shared by note queries and counts.
type NoteFilter struct {
	OwnerID     uint
	TitleSearch string
}

func (f NoteFilter) scope(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", f.OwnerID)
	if f.TitleSearch != "" {
		db = db.Where("title LIKE ?", "%"+f.TitleSearch+"%")
	}
	return db
}

// NoteSort orders by Column first and id descending second.
type NoteSort struct {
	Column string
	Desc   bool
}

var sortColumns = map[string]string{
	types.SortByID:        "id",
	types.SortByTitle:     "title",
	types.SortByCreatedAt: "created_at",
}

func (s NoteSort) columnName() string {
	if col, ok := sortColumns[s.Column]; ok {
		return col
	}
	return sortColumns[types.SortByCreatedAt]
}

// FindNote returns the note with the given id only if it belongs to ownerID.
func (s *Store) FindNote(ctx context.Context, id, ownerID uint) (types.Note, error) {
	var note types.Note
	err := s.db.WithContext(ctx).
		Scopes(NoteFilter{OwnerID: ownerID}.scope).
		First(&note, "id = ?", id).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return types.Note{}, types.ErrNotFound
	}
	if err != nil {
		return types.Note{}, errors.Wrapf(err, "Looking for note %d", id)
	}
	return note, nil
}

func (s *Store) QueryNotes(ctx context.Context, filter NoteFilter, sort NoteSort, offset, limit int) ([]types.Note, error) {
	ret := []types.Note{}
	err := s.db.WithContext(ctx).
		Scopes(filter.scope).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sort.columnName()}, Desc: sort.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Offset(offset).
		Limit(limit).
		Find(&ret).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for notes owned by user %d", filter.OwnerID)
	}
	return ret, nil
}

func (s *Store) CountNotes(ctx context.Context, filter NoteFilter) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&types.Note{}).
		Scopes(filter.scope).
		Count(&total).Error
	if err != nil {
		return 0, errors.Wrapf(err, "Counting notes owned by user %d", filter.OwnerID)
	}
	return total, nil
}

func (s *Store) CreateNote(ctx context.Context, note *types.Note) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(note).Error; err != nil {
		return errors.Wrap(err, "Saving note to db")
	}
	return nil
}

func (s *Store) SaveNote(ctx context.Context, note *types.Note) error {
	err := s.db.WithContext(ctx).
		Model(note).
		Updates(map[string]any{"title": note.Title, "content": note.Content}).Error
	if err != nil {
		return errors.Wrapf(err, "Updating note %d", note.ID)
	}
	return nil
}

// DeleteNote removes the note owned by ownerID. Deleting a note that is
// already gone reports types.ErrNotFound.
func (s *Store) DeleteNote(ctx context.Context, id, ownerID uint) error {
	result := s.db.WithContext(ctx).
		Scopes(NoteFilter{OwnerID: ownerID}.scope).
		Delete(&types.Note{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "Deleting note %d", id)
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}
