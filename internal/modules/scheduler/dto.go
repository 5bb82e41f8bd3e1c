package scheduler

import "time"

type ProposeBookingRequest struct {
	RoomID      int64     `json:"room_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	ExternalRef string    `json:"external_ref"`
}

type UpdateBookingRequest struct {
	RoomID    int64     `json:"room_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
