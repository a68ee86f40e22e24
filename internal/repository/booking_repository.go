package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medinova/medinova-api/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error)
	ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, user_email, test_id, booking_date, status, report_url, created_at`

func (r *bookingRepository) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (user_email, test_id, booking_date, status)
		VALUES ($1,$2,$3,'booked')
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, req.UserEmail, req.TestID, req.BookingDate).Scan(
		&b.ID, &b.UserEmail, &b.TestID, &b.BookingDate, &b.Status, &b.ReportURL, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.UserEmail, &b.TestID, &b.BookingDate, &b.Status, &b.ReportURL, &b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.query(ctx, q, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *bookingRepository) ListByEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE lower(user_email)=lower($1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.query(ctx, q, email, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *bookingRepository) ListByTest(ctx context.Context, testID int64, limit, offset int) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE test_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.query(ctx, q, testID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *bookingRepository) query(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.UserEmail, &b.TestID, &b.BookingDate, &b.Status, &b.ReportURL, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
