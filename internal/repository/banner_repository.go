package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medinova/medinova-api/internal/domain"
)

type BannerRepository interface {
	ListActive(ctx context.Context) ([]domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Activate(ctx context.Context, id int64) (int64, error)
}

type bannerRepository struct {
	pool *pgxpool.Pool
}

func NewBannerRepository(pool *pgxpool.Pool) BannerRepository {
	return &bannerRepository{pool: pool}
}

const bannerCols = `id, name, title, description, image_url, coupon_code, discount_rate, is_active, created_at`

func (r *bannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	return r.list(ctx, `SELECT `+bannerCols+` FROM banners WHERE is_active ORDER BY created_at DESC`)
}

func (r *bannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	return r.list(ctx, `SELECT `+bannerCols+` FROM banners ORDER BY created_at DESC`)
}

func (r *bannerRepository) list(ctx context.Context, q string) ([]domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Title, &b.Description, &b.ImageURL, &b.CouponCode, &b.DiscountRate, &b.IsActive, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *bannerRepository) Create(ctx context.Context, req *domain.CreateBannerRequest) (int64, error) {
	const q = `
		INSERT INTO banners (name, title, description, image_url, coupon_code, discount_rate)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, q,
		req.Name, req.Title, req.Description, req.ImageURL, req.CouponCode, req.DiscountRate,
	).Scan(&id)
	return id, err
}

func (r *bannerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM banners WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Activate flips the active flag to the target banner in one statement, so
// exactly one banner ends up active even under concurrent calls. The returned
// count is 1 when the target exists and 0 otherwise.
func (r *bannerRepository) Activate(ctx context.Context, id int64) (int64, error) {
	const q = `
		WITH flipped AS (
			UPDATE banners SET is_active = (id = $1)
			RETURNING id
		)
		SELECT count(*) FROM flipped WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var matched int64
	err := r.pool.QueryRow(ctx, q, id).Scan(&matched)
	if err != nil {
		return 0, err
	}
	return matched, nil
}
