package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notekeeper/credentials"
	"github.com/sirupsen/logrus"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,notblank,email,max=180"`
	Password string `json:"password" validate:"required,notblank,min=8"`
}

func signUpWithEmailAndPassword(svc *credentials.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON Body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		if _, err := svc.Register(c.Request().Context(), req.Email, req.Password); err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
	}
}

func signInWithEmailAndPassword(svc *credentials.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON Body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		user, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}

		if err := startSession(c, user); err != nil {
			return err
		}

		logrus.WithField("user_id", user.ID).Info("Signed in")
		return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
	}
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := endSession(c); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
