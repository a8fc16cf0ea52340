package types

import (
	errs "errors"
	"fmt"
	"net/mail"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	DBDriverSqlite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	ListenAddr        string
	AllowSignup       bool
	AllowSignupEmails []string
	CookeSecret       []byte
	DBDriver          string
	DBPath            string
	DBDSN             string
	DBConnectAttempts uint
	BcryptCost        int
	LogLevel          logrus.Level
}

// SignupAllowed reports whether the given email may register.
func (c Config) SignupAllowed(email string) bool {
	if !c.AllowSignup {
		return false
	}
	return len(c.AllowSignupEmails) == 0 || slices.Contains(c.AllowSignupEmails, email)
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.ListenAddr = goli.DefaultEnv("NOTEKEEPER_LISTEN_ADDR", ":8080")

	ret.LogLevel, err = logrus.ParseLevel(goli.DefaultEnv("NOTEKEEPER_LOG_LEVEL", "info"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEKEEPER_LOG_LEVEL"))
	}

	ret.AllowSignup, err = strconv.ParseBool(goli.DefaultEnv("NOTEKEEPER_ALLOW_SIGNUP", "true"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEKEEPER_ALLOW_SIGNUP"))
	}

	allowedEmails := strings.Split(os.Getenv("NOTEKEEPER_ALLOW_SIGNUP_EMAILS"), ",")
	for _, e := range allowedEmails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		email, err := mail.ParseAddress(e)
		if err != nil {
			retErr = errs.Join(retErr, errors.Wrapf(err, "parsing email %q", e))
		} else {
			ret.AllowSignupEmails = append(ret.AllowSignupEmails, email.Address)
		}
	}
	if len(ret.AllowSignupEmails) > 0 {
		logrus.Infof("Allowed signup emails: %v", ret.AllowSignupEmails)
	}

	ret.BcryptCost, err = strconv.Atoi(goli.DefaultEnv("NOTEKEEPER_BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEKEEPER_BCRYPT_COST"))
	} else if ret.BcryptCost < bcrypt.MinCost || ret.BcryptCost > bcrypt.MaxCost {
		retErr = errs.Join(retErr, fmt.Errorf("NOTEKEEPER_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	cookieSecret, ok := os.LookupEnv("NOTEKEEPER_COOKIE_STORE_SECRET")
	if !ok || cookieSecret == "" {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEKEEPER_COOKIE_STORE_SECRET"))
	} else {
		ret.CookeSecret = []byte(cookieSecret)
	}

	attempts, err := strconv.ParseUint(goli.DefaultEnv("NOTEKEEPER_DB_CONNECT_ATTEMPTS", "5"), 10, 32)
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEKEEPER_DB_CONNECT_ATTEMPTS"))
	} else if attempts == 0 {
		retErr = errs.Join(retErr, fmt.Errorf("NOTEKEEPER_DB_CONNECT_ATTEMPTS must be at least 1"))
	}
	ret.DBConnectAttempts = uint(attempts)

	ret.DBDriver = goli.DefaultEnv("NOTEKEEPER_DB_DRIVER", DBDriverSqlite)
	switch ret.DBDriver {
	case DBDriverSqlite:
		ret.DBPath, ok = os.LookupEnv("NOTEKEEPER_DB_PATH")
		if !ok {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEKEEPER_DB_PATH"))
		} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "Directory for NOTEKEEPER_DB_PATH must exist"))
		}
	case DBDriverPostgres:
		ret.DBDSN, ok = os.LookupEnv("NOTEKEEPER_DB_DSN")
		if !ok {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEKEEPER_DB_DSN"))
		}
	default:
		retErr = errs.Join(retErr, fmt.Errorf("unsupported NOTEKEEPER_DB_DRIVER %q", ret.DBDriver))
	}

	return ret, retErr
}
