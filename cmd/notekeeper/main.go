package main

import (
	"context"
	errs "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/notekeeper/auth"
	"github.com/oliverisaac/notekeeper/credentials"
	"github.com/oliverisaac/notekeeper/notes"
	"github.com/oliverisaac/notekeeper/store"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func init() {
	goli.InitLogrus(logrus.InfoLevel)
}

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Debug("no .env file loaded")
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	logrus.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to connect database")
	}
	defer db.Close()

	creds, err := credentials.NewService(db, credentials.BcryptHasher{Cost: cfg.BcryptCost}, cfg)
	if err != nil {
		return errors.Wrap(err, "creating credential service")
	}

	e, err := newServer(cfg, auth.NewGuard(db), notes.NewService(db), creds)
	if err != nil {
		return errors.Wrap(err, "creating server")
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logrus.Infof("Listening on %s", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errs.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serving http")
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func newServer(cfg types.Config, guard *auth.Guard, noteSvc *notes.Service, creds *credentials.Service) (*echo.Echo, error) {
	rv, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = rv
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())

	e.Use(middleware.Secure())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "id=${id}, method=${method}, uri=${uri}, status=${status}\n",
	}))

	cookieStore := sessions.NewCookieStore(cfg.CookeSecret)
	e.Use(session.Middleware(cookieStore))
	e.Use(UserMiddleware(guard))

	api := e.Group("/api")

	api.GET("/health", healthHandler())
	api.GET("/version", versionHandler())

	// auth
	api.POST("/register", signUpWithEmailAndPassword(creds))
	api.POST("/login", signInWithEmailAndPassword(creds))
	api.POST("/logout", signOut())

	// notes
	api.POST("/note", createNote(noteSvc))
	api.GET("/note", listNotes(noteSvc))
	api.GET("/note/:id", readNote(noteSvc))
	api.PATCH("/note/:id", patchNote(noteSvc))
	api.DELETE("/note/:id", deleteNote(noteSvc))

	return e, nil
}
