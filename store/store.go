package store

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the persistence gateway for notes and users.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the configured database, waits for it to answer and
// migrates the note and user tables.
func Open(ctx context.Context, cfg types.Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case types.DBDriverPostgres:
		dialector = postgres.Open(cfg.DBDSN)
	case types.DBDriverSqlite, "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, errors.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting sql handle")
	}

	attempts := cfg.DBConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	err = retry.Do(
		func() error { return sqlDB.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(300*time.Millisecond),
		retry.OnRetry(func(attempt uint, err error) {
			logrus.WithField("attempt", attempt).Warn(errors.Wrap(err, "pinging database"))
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "pinging database")
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	gormTables := []any{
		&types.User{},
		&types.Note{},
	}
	for _, t := range gormTables {
		if err := s.db.WithContext(ctx).AutoMigrate(t); err != nil {
			return errors.Wrap(err, "Failed to migrate")
		}
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql handle")
	}
	return sqlDB.Close()
}
