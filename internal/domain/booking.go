package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingDelivered BookingStatus = "delivered"
)

// Booking links a user (by email) to a diagnostic test.
type Booking struct {
	ID          int64         `json:"id"`
	UserEmail   string        `json:"user_email"`
	TestID      int64         `json:"test_id"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
	ReportURL   *string       `json:"report_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// IsOwner reports whether the given email owns this booking.
func (b *Booking) IsOwner(email string) bool {
	return strings.EqualFold(b.UserEmail, email)
}

type CreateBookingRequest struct {
	UserEmail   string    `json:"user_email"`
	TestID      int64     `json:"test_id"`
	BookingDate time.Time `json:"booking_date"`
}
