package domain

import "time"

type UserRole string

const (
	RoleEmployee  UserRole = "employee"
	RoleReception UserRole = "reception"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Sector       string    `json:"sector,omitempty"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the already-authenticated identity passed explicitly into
// every service call. It is extracted from the JWT by the auth middleware
// and never read from ambient state.
type Principal struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Role   string `json:"role"`
}
