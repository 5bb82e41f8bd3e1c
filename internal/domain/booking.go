package domain

import "time"

type BookingStatus string

const (
	// BookingPending marks a booking accepted locally but not yet
	// acknowledged by the authoritative store.
	BookingPending BookingStatus = "pending"
	// BookingConfirmed marks a booking acknowledged by the authoritative
	// store and carrying a server-assigned id.
	BookingConfirmed BookingStatus = "confirmed"
)

// Booking reserves one room for a half-open interval [StartTime, EndTime).
// Two bookings for the same room conflict iff
// NOT (a.end <= b.start OR a.start >= b.end); touching boundaries are fine.
type Booking struct {
	ID             int64         `json:"id"`
	LocalID        string        `json:"local_id,omitempty"`
	IdempotencyKey string        `json:"-"`
	RoomID         int64         `json:"room_id" validate:"required"`
	Title          string        `json:"title" validate:"required"`
	OwnerName      string        `json:"owner_name"`
	OwnerEmail     string        `json:"owner_email"`
	StartTime      time.Time     `json:"start_time" validate:"required"`
	EndTime        time.Time     `json:"end_time" validate:"required"`
	ExternalRef    string        `json:"external_ref,omitempty"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Overlaps reports whether two half-open intervals intersect.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
