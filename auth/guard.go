// Package auth resolves who is calling and whether they may touch a note.
package auth

import (
	"context"
	errs "errors"

	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (types.User, error)
}

type Guard struct {
	users UserFinder
}

func NewGuard(users UserFinder) *Guard {
	return &Guard{users: users}
}

// CurrentUser turns a session user id into a user. A zero id or an id whose
// user no longer exists yields nil without an error.
func (g *Guard) CurrentUser(ctx context.Context, userID uint) (*types.User, error) {
	if userID == 0 {
		return nil, nil
	}
	user, err := g.users.FindUserByID(ctx, userID)
	if errs.Is(err, types.ErrNotFound) {
		logrus.Debugf("Session refers to missing user %d", userID)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "resolving current user")
	}
	return &user, nil
}

// OwnsNote reports whether user is the owner of note. A note without an owner
// is owned by nobody.
func OwnsNote(user *types.User, note types.Note) bool {
	if user == nil || !user.IsSet() || note.UserID == 0 {
		return false
	}
	return note.UserID == user.ID
}
