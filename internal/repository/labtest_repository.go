package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medinova/medinova-api/internal/domain"
)

type LabTestRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.LabTest, error)
	GetByID(ctx context.Context, id int64) (*domain.LabTest, error)
	Create(ctx context.Context, req *domain.CreateLabTestRequest) (int64, error)
	Update(ctx context.Context, id int64, patch domain.LabTestPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type labTestRepository struct {
	pool *pgxpool.Pool
}

func NewLabTestRepository(pool *pgxpool.Pool) LabTestRepository {
	return &labTestRepository{pool: pool}
}

const labTestCols = `id, title, image_url, details, price_cents, slots, scheduled_at, created_at, updated_at`

func (r *labTestRepository) List(ctx context.Context, limit, offset int) ([]domain.LabTest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + labTestCols + ` FROM tests ORDER BY scheduled_at ASC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []domain.LabTest
	for rows.Next() {
		var t domain.LabTest
		if err := rows.Scan(
			&t.ID, &t.Title, &t.ImageURL, &t.Details, &t.PriceCents, &t.Slots, &t.ScheduledAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (r *labTestRepository) GetByID(ctx context.Context, id int64) (*domain.LabTest, error) {
	const q = `SELECT ` + labTestCols + ` FROM tests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t domain.LabTest
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&t.ID, &t.Title, &t.ImageURL, &t.Details, &t.PriceCents, &t.Slots, &t.ScheduledAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &t, err
}

func (r *labTestRepository) Create(ctx context.Context, req *domain.CreateLabTestRequest) (int64, error) {
	const q = `
		INSERT INTO tests (title, image_url, details, price_cents, slots, scheduled_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q,
		req.Title, req.ImageURL, req.Details, req.PriceCents, req.Slots, req.ScheduledAt,
	).Scan(&id)
	return id, err
}

func (r *labTestRepository) Update(ctx context.Context, id int64, patch domain.LabTestPatch) (int64, error) {
	const q = `
		UPDATE tests
		SET
			title        = COALESCE($2, title),
			image_url    = COALESCE($3, image_url),
			details      = COALESCE($4, details),
			price_cents  = COALESCE($5, price_cents),
			slots        = COALESCE($6, slots),
			scheduled_at = COALESCE($7, scheduled_at),
			updated_at   = now()
		WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id,
		patch.Title, patch.ImageURL, patch.Details, patch.PriceCents, patch.Slots, patch.ScheduledAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *labTestRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM tests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
