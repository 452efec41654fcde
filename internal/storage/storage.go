// Package storage opens the configured database, migrates it and builds the repositories.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"linguahouse/internal/config"
	"linguahouse/internal/migrations"
	"linguahouse/internal/repository"
	"linguahouse/internal/repository/postgres"
	"linguahouse/internal/repository/sqlite"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

// Store bundles the repositories of one database connection
type Store struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Cards    repository.CardRepository

	close func() error
}

// Open connects to the configured database and applies pending migrations
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := connectPostgres(cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(db, migrations.DialectPostgres, logger); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Users:    postgres.NewUserRepo(db),
			Profiles: postgres.NewProfileRepo(db),
			Cards:    postgres.NewCardRepo(db),
			close:    db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(db.DB, migrations.DialectSQLite, logger); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("SQLite database opened", zap.String("path", cfg.SQLitePath))
		return &Store{
			Users:    sqlite.NewUserRepo(db),
			Profiles: sqlite.NewProfileRepo(db),
			Cards:    sqlite.NewCardRepo(db),
			close:    db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.close()
}

// connectPostgres connects to PostgreSQL with retries
func connectPostgres(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		logger.Info("Database connection established")
		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}
