package domain

import "time"

// Banner is a promotional content item. At most one banner is active at a
// time; activating one deactivates the rest in a single statement.
type Banner struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	CouponCode   string    `json:"coupon_code"`
	DiscountRate int       `json:"discount_rate"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateBannerRequest struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	CouponCode   string `json:"coupon_code"`
	DiscountRate int    `json:"discount_rate"`
}
