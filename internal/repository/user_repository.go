package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medinova/medinova-api/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, req *domain.CreateUserRequest) (int64, error)
	SetRole(ctx context.Context, id int64, role string) (int64, error)
	SetStatus(ctx context.Context, id int64, status string) (int64, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, email, name, role, status, photo_url, profile, created_at, updated_at`

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + userCols + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.PhotoURL, &u.Profile, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE lower(email)=lower($1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.PhotoURL, &u.Profile, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &u, err
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.PhotoURL, &u.Profile, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &u, err
}

// Create inserts a user keyed by email. It returns 0 with no error when a
// record for that email already exists; existing fields are never merged.
func (r *userRepository) Create(ctx context.Context, req *domain.CreateUserRequest) (int64, error) {
	const q = `
		INSERT INTO users (email, name, photo_url, profile)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::jsonb))
		ON CONFLICT (email) DO NOTHING
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q, req.Email, req.Name, req.PhotoURL, req.Profile).Scan(&id)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return id, err
}

func (r *userRepository) SetRole(ctx context.Context, id int64, role string) (int64, error) {
	const q = `UPDATE users SET role=$2, updated_at=now() WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, role)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *userRepository) SetStatus(ctx context.Context, id int64, status string) (int64, error) {
	const q = `UPDATE users SET status=$2, updated_at=now() WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	const q = `
		UPDATE users
		SET
			name       = COALESCE($2, name),
			photo_url  = COALESCE($3, photo_url),
			profile    = COALESCE($4, profile),
			updated_at = now()
		WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, patch.Name, patch.PhotoURL, patch.Profile)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
