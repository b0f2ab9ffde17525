package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/migrations"

	// database/sql drivers for the relational backends.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a relational database connection together with the dialect it was
// opened for, the error classifier used by the retry policy, and the
// per-call limits taken from configuration.
type DB struct {
	*sql.DB

	dialect            string
	errorClassificator ErrorClassificator
	queryTimeout       time.Duration
	retryAttempts      int
	logger             *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection through the pgx
// database/sql driver, verifies it with a ping, and returns a *DB configured
// with the Postgres error classifier.
func NewConnectPostgres(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            migrations.DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		queryTimeout:       cfg.QueryTimeout,
		retryAttempts:      cfg.RetryAttempts,
		logger:             log,
	}, nil
}

// NewConnectSQLite opens (or creates) a SQLite database at the file path in
// cfg.DB.DSN. SQLite is a local file, so every error is treated as
// non-retryable.
func NewConnectSQLite(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.DB.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		dialect:            migrations.DialectSQLite,
		errorClassificator: nonRetryableClassifier{},
		queryTimeout:       cfg.QueryTimeout,
		retryAttempts:      cfg.RetryAttempts,
		logger:             log,
	}, nil
}

// Migrate applies all pending schema migrations for this connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs op with the configured per-call timeout, repeating it up to
// the configured number of attempts while the error classifier reports the
// failure as retryable. The final error is returned unchanged so that caller
// sentinel matching keeps working.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := db.retryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx := ctx
		if db.queryTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, db.queryTimeout)
			err = op(callCtx)
			cancel()
		} else {
			err = op(callCtx)
		}

		if err == nil {
			return nil
		}
		if db.errorClassificator.Classify(err) != Retryable || attempt == attempts {
			return err
		}

		db.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("retryable store error, trying again")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}

	return err
}
