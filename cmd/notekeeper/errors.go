package main

import (
	errs "errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/sirupsen/logrus"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{types.ErrValidationFailed, http.StatusUnprocessableEntity},
	{types.ErrNotFound, http.StatusNotFound},
	{types.ErrAlreadyExists, http.StatusConflict},
	{types.ErrInvalidCredentials, http.StatusUnauthorized},
	{types.ErrUnauthenticated, http.StatusUnauthorized},
	{types.ErrSignupNotAllowed, http.StatusForbidden},
}

// httpErrorHandler turns service failures into JSON responses.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logrus.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Error(goerrors.Wrap(err, 1).ErrorStack())
	}

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(status)
	} else {
		respErr = c.JSON(status, body)
	}
	if respErr != nil {
		logrus.Error(respErr)
	}
}

func errorResponse(err error) (int, map[string]any) {
	var ve *validationError
	if errs.As(err, &ve) {
		return http.StatusUnprocessableEntity, map[string]any{"errors": ve.Fields}
	}

	var he *echo.HTTPError
	if errs.As(err, &he) {
		return he.Code, map[string]any{"error": fmt.Sprint(he.Message)}
	}

	if errs.Is(err, types.ErrInvalidCredentials) {
		return http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"}
	}

	for _, es := range errorStatuses {
		if errs.Is(err, es.err) {
			return es.status, map[string]any{"error": err.Error()}
		}
	}

	return http.StatusInternalServerError, map[string]any{"error": "Oops! It appears we have had an error"}
}
