// Package migrations embeds the schema for every supported database and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// dirs maps a goose dialect to its directory inside FS.
var dirs = map[string]string{
	DialectSQLite:   "sqlite",
	DialectPostgres: "postgres",
}

// Up applies all pending migrations for dialect. Applied versions are
// tracked by goose in the goose_db_version table.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(FS)
	goose.SetLogger(slogLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// slogLogger routes goose output through the default slog logger.
type slogLogger struct{}

func (slogLogger) Printf(format string, v ...any) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (slogLogger) Fatalf(format string, v ...any) {
	panic(fmt.Sprintf(format, v...))
}
