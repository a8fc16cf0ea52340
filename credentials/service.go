// Package credentials registers users and checks their passwords.
package credentials

import (
	"context"
	errs "errors"

	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type userStore interface {
	FindUserByEmail(ctx context.Context, email string) (types.User, error)
	CreateUser(ctx context.Context, user *types.User) error
}

type Service struct {
	users     userStore
	hasher    Hasher
	cfg       types.Config
	dummyHash string
}

func NewService(users userStore, hasher Hasher, cfg types.Config) (*Service, error) {
	// Unknown emails are checked against this hash so both login failures cost the same.
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &Service{users: users, hasher: hasher, cfg: cfg, dummyHash: dummy}, nil
}

func (s *Service) Register(ctx context.Context, email, password string) (types.User, error) {
	if !s.cfg.SignupAllowed(email) {
		logrus.Infof("Rejected signup for %s", email)
		return types.User{}, types.ErrSignupNotAllowed
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	if err == nil {
		return types.User{}, errors.Wrapf(types.ErrAlreadyExists, "User already exists with email: %s", email)
	}
	if !errs.Is(err, types.ErrNotFound) {
		return types.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return types.User{}, err
	}

	user := types.User{Email: email, Password: hash}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errs.Is(err, types.ErrAlreadyExists) {
			return types.User{}, errors.Wrapf(err, "User already exists with email: %s", email)
		}
		return types.User{}, err
	}

	logrus.WithField("user_id", user.ID).Infof("Registered user %s", email)
	return user, nil
}

// Login checks the password for email. Unknown emails and wrong passwords
// both return exactly types.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil && !errs.Is(err, types.ErrNotFound) {
		return types.User{}, err
	}

	if err != nil {
		s.hasher.Verify(s.dummyHash, password)
		return types.User{}, types.ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.Password, password) {
		logrus.WithField("user_id", user.ID).Debug("Password mismatch")
		return types.User{}, types.ErrInvalidCredentials
	}

	logrus.WithField("user_id", user.ID).Debug("Login succeeded")
	return user, nil
}
