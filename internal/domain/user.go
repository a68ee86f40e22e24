package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Status    string          `json:"status"`
	PhotoURL  string          `json:"photo_url"`
	Profile   json.RawMessage `json:"profile,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type CreateUserRequest struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	PhotoURL string          `json:"photo_url"`
	Profile  json.RawMessage `json:"profile,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateUserRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

type UserPatch struct {
	Name     *string         `json:"name,omitempty"`
	PhotoURL *string         `json:"photo_url,omitempty"`
	Profile  json.RawMessage `json:"profile,omitempty"`
}
