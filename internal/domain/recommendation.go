package domain

import "time"

// Recommendation is read-only reference content shown on the home page.
type Recommendation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
