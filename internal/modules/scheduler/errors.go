package scheduler

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("caller does not own this booking")
	ErrNotFound   = errors.New("booking not found")
)

// ConflictError reports an overlap with an existing booking, carrying the
// colliding interval so the caller can show it.
type ConflictError struct {
	RoomID int64
	Start  time.Time
	End    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d already booked for [%s, %s)",
		e.RoomID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
