package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/msomdec/task-tracker/internal/domain"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type UserRepository struct {
	db querier
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{db: db.Pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	createdAt := now()
	query := `INSERT INTO users (name, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, createdAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = createdAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id", `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, by, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", by, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
