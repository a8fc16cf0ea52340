package types

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:180;uniqueIndex;not null"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	Notes     []Note
}

func (u User) IsSet() bool {
	return u.ID != 0
}
