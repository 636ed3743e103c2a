package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration
// files and strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// Store exposes the repositories bound to one connection or transaction.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
}

// Transactor runs fn against a transaction-scoped Store. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx Store) error) error
}
