package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/migrations"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connection is the PostgreSQL implementation of domain.Database,
// domain.Store and domain.Transactor.
type Connection struct {
	*pgxpool.Pool
}

var (
	_ domain.Database   = (*Connection)(nil)
	_ domain.Store      = (*Connection)(nil)
	_ domain.Transactor = (*Connection)(nil)
)

// NewConnection opens a connection pool for dsn and checks that the
// server is reachable.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

// Migrate applies the embedded PostgreSQL schema. goose needs a
// database/sql handle, so a short-lived one is opened through the pgx
// stdlib driver.
func (c *Connection) Migrate(ctx context.Context) error {
	db, err := sql.Open("pgx", c.Pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	return migrations.Up(ctx, db, migrations.DialectPostgres)
}

func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

func (c *Connection) Users() domain.UserRepository       { return &UserRepository{db: c.Pool} }
func (c *Connection) Projects() domain.ProjectRepository { return &ProjectRepository{db: c.Pool} }
func (c *Connection) Tasks() domain.TaskRepository       { return &TaskRepository{db: c.Pool} }

// InTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (c *Connection) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	tx, err := c.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txStore struct {
	tx pgx.Tx
}

func (s txStore) Users() domain.UserRepository       { return &UserRepository{db: s.tx} }
func (s txStore) Projects() domain.ProjectRepository { return &ProjectRepository{db: s.tx} }
func (s txStore) Tasks() domain.TaskRepository       { return &TaskRepository{db: s.tx} }

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
