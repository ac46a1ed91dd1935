package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// UserRepository defines persistence access for accounts and their session hash.
type UserRepository interface {
	// CreateWithProfile inserts the user and its role profile atomically.
	CreateWithProfile(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) error
	// SetRefreshTokenHash overwrites (or clears, when hash is nil) the stored hash.
	SetRefreshTokenHash(ctx context.Context, id string, hash *string) error
	// SwapRefreshTokenHash replaces the hash only if it still equals expected.
	SwapRefreshTokenHash(ctx context.Context, id, expected, next string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, refresh_token_hash, created_at, updated_at`

func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User) error {
	const insertUser = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUser,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Role,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		switch user.Role {
		case domain.RoleJobSeeker:
			_, err := tx.Exec(ctx, `INSERT INTO jobseeker_profiles (user_id) VALUES ($1)`, user.ID)
			return err
		case domain.RoleEmployer:
			_, err := tx.Exec(ctx, `INSERT INTO employer_profiles (user_id) VALUES ($1)`, user.ID)
			return err
		}
		return nil
	})
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) UpdateName(ctx context.Context, id, name string) error {
	const query = `UPDATE users SET name=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, name, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetRefreshTokenHash(ctx context.Context, id string, hash *string) error {
	const query = `UPDATE users SET refresh_token_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SwapRefreshTokenHash(ctx context.Context, id, expected, next string) (bool, error) {
	const query = `
        UPDATE users SET refresh_token_hash=$1, updated_at=NOW()
        WHERE id=$2 AND refresh_token_hash=$3`
	cmd, err := r.pool.Exec(ctx, query, next, id, expected)
	if err != nil {
		return false, mapError(err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
