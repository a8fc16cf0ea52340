package main

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notekeeper/auth"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	UserKey       = "session-user"
	sessionName   = "session"
	sessionUserID = "user_id"
	sessionMaxAge = 3600 * 24 * 30
)

// UserMiddleware resolves the session cookie into the current user. Requests
// without a valid session continue anonymously.
func UserMiddleware(guard *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(sessionName, c)
			if err != nil {
				logrus.Debug(errors.Wrap(err, "reading session"))
				return next(c)
			}

			userID, _ := sess.Values[sessionUserID].(uint)
			user, err := guard.CurrentUser(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if user != nil {
				c.Set(UserKey, user)
			}
			return next(c)
		}
	}
}

// GetSessionUser returns the user resolved by UserMiddleware, or nil.
func GetSessionUser(c echo.Context) *types.User {
	user, ok := c.Get(UserKey).(*types.User)
	if !ok {
		return nil
	}
	logrus.Debugf("Found session user %s", user.Email)
	return user
}

func startSession(c echo.Context, user types.User) error {
	sess, _ := session.Get(sessionName, c)
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[sessionUserID] = user.ID

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return nil
}

func endSession(c echo.Context) error {
	sess, _ := session.Get(sessionName, c)
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	delete(sess.Values, sessionUserID)

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}
