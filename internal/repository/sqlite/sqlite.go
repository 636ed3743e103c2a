package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/migrations"
	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the SQLite implementation of domain.Database, domain.Store and
// domain.Transactor.
type DB struct {
	SqlDB *sql.DB
}

var (
	_ domain.Database   = (*DB)(nil)
	_ domain.Store      = (*DB)(nil)
	_ domain.Transactor = (*DB)(nil)
)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and busy waiting.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return configure(db)
}

// NewFromSQL wraps an already opened connection pool without touching its
// pragmas. Used with test doubles.
func NewFromSQL(db *sql.DB) *DB {
	return &DB{SqlDB: db}
}

func configure(db *sql.DB) (*DB, error) {
	ctx := context.Background()

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// SQLite serialises writers; a single connection also keeps :memory:
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded SQLite schema.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, db.SqlDB, migrations.DialectSQLite)
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

func (db *DB) Users() domain.UserRepository       { return &UserRepository{db: db.SqlDB} }
func (db *DB) Projects() domain.ProjectRepository { return &ProjectRepository{db: db.SqlDB} }
func (db *DB) Tasks() domain.TaskRepository       { return &TaskRepository{db: db.SqlDB} }

// InTx runs fn inside a single SQLite transaction.
func (db *DB) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	tx, err := db.SqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type txStore struct {
	tx *sql.Tx
}

func (s txStore) Users() domain.UserRepository       { return &UserRepository{db: s.tx} }
func (s txStore) Projects() domain.ProjectRepository { return &ProjectRepository{db: s.tx} }
func (s txStore) Tasks() domain.TaskRepository       { return &TaskRepository{db: s.tx} }

// now returns the timestamp written to created_at columns. Microsecond
// precision keeps values comparable across backends.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
