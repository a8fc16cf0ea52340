package types

import (
	"time"
)

type Note struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:100;not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"<-:create;not null"`
	UserID    uint      `gorm:"<-:create;index;not null"`
	User      User
}

func NewNoteForUser(title, content string, user User, now time.Time) Note {
	return Note{
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UserID:    user.ID,
	}
}

// NotePatch carries the fields of a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title   *string
	Content *string
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}
