package domain

import "time"

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestApproved  RequestStatus = "approved"
	RequestDenied    RequestStatus = "denied"
	RequestCancelled RequestStatus = "cancelled"
)

type RequestUrgency string

const (
	UrgencyLow    RequestUrgency = "low"
	UrgencyNormal RequestUrgency = "normal"
	UrgencyHigh   RequestUrgency = "high"
)

type EquipmentRequest struct {
	ID            int64          `json:"id"`
	RequesterID   int64          `json:"requester_id"`
	RequesterName string         `json:"requester_name"`
	Item          string         `json:"item" validate:"required"`
	Justification string         `json:"justification,omitempty"`
	Urgency       RequestUrgency `json:"urgency"`
	Status        RequestStatus  `json:"status"`
	DecidedBy     *int64         `json:"decided_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
