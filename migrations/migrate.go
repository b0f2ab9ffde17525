// Package migrations holds the embedded SQL schema migrations for the
// relational user record store and the goose entry point that applies them.
//
// Postgres and SQLite need slightly different DDL (identity columns,
// timestamp defaults), so each dialect keeps its own migration set in a
// subdirectory of the embedded filesystem.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialects accepted by [Migrate]. They double as the name of the embedded
// directory containing the dialect's migration files.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// gooseDialect maps a migration directory name to the goose driver dialect.
var gooseDialect = map[string]string{
	DialectPostgres: "pgx",
	DialectSQLite:   "sqlite3",
}

// Migrate applies all pending migrations for the given dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	drv, ok := gooseDialect[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(drv); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
