package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func healthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func versionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"version": version,
			"commit":  commit,
			"date":    date,
		})
	}
}
