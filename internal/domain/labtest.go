package domain

import "time"

// LabTest is a bookable item in the diagnostic test catalog.
type LabTest struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	Details     string    `json:"details"`
	PriceCents  int64     `json:"price_cents"`
	Slots       int       `json:"slots"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateLabTestRequest struct {
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	Details     string    `json:"details"`
	PriceCents  int64     `json:"price_cents"`
	Slots       int       `json:"slots"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type LabTestPatch struct {
	Title       *string    `json:"title,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Details     *string    `json:"details,omitempty"`
	PriceCents  *int64     `json:"price_cents,omitempty"`
	Slots       *int       `json:"slots,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}
