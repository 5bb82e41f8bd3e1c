package domain

import "time"

// Room is a static catalog entry. Rooms are defined at seed time and never
// created or destroyed through the API.
type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	Color       string    `json:"color,omitempty"`
	IsReception bool      `json:"is_reception"`
	CreatedAt   time.Time `json:"created_at"`
}
