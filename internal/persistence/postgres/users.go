package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fitjournal/internal/domain"
)

// uniqueViolation is the Postgres error code for duplicate unique keys.
const uniqueViolation = "23505"

// UserRepository provides Postgres-backed persistence for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user. A duplicate email surfaces as domain.ErrEmailTaken,
// closing the check-then-insert race at the unique index.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (email, full_name, password_hash)
        VALUES ($1, $2, $3) RETURNING id, email, full_name, password_hash`

	created, err := scanUser(r.pool.QueryRow(ctx, query, user.Email, user.FullName, user.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// FindByEmail returns the user with the exact stored email, or (nil, nil).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, email, full_name, password_hash FROM users WHERE email=$1`
	return r.find(ctx, query, email)
}

// FindByID returns the user with the given id, or (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT id, email, full_name, password_hash FROM users WHERE id=$1`
	return r.find(ctx, query, id)
}

func (r *UserRepository) find(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash); err != nil {
		return nil, err
	}
	return &u, nil
}
