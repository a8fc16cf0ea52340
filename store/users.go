package store

import (
	"context"
	errs "errors"

	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) FindUserByID(ctx context.Context, id uint) (types.User, error) {
	var user types.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return types.User{}, types.ErrNotFound
	}
	if err != nil {
		return types.User{}, errors.Wrapf(err, "Looking for user %d", id)
	}
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return types.User{}, types.ErrNotFound
	}
	if err != nil {
		return types.User{}, errors.Wrap(err, "Looking for user by email")
	}
	return user, nil
}

// CreateUser inserts the user. A duplicate email is reported as
// types.ErrAlreadyExists even when it slips past an earlier lookup.
func (s *Store) CreateUser(ctx context.Context, user *types.User) error {
	err := s.db.WithContext(ctx).Omit("Notes").Create(user).Error
	if errs.Is(err, gorm.ErrDuplicatedKey) {
		return types.ErrAlreadyExists
	}
	if err != nil {
		return errors.Wrap(err, "Saving user to db")
	}
	return nil
}
