package domain

import "time"

type ActivityCategory string

const (
	ActivityPageVisit      ActivityCategory = "page_visit"
	ActivityProteinSwap    ActivityCategory = "protein_exchange"
	ActivityReservation    ActivityCategory = "room_reservation"
	ActivityReception      ActivityCategory = "reception_appointment"
	ActivityPostCreation   ActivityCategory = "post_creation"
	ActivityComment        ActivityCategory = "comment"
	ActivityReaction       ActivityCategory = "reaction"
	ActivityEquipmentReq   ActivityCategory = "equipment_request"
)

// activityPoints is the fixed category → points table. Point values are
// stamped onto the event at creation time, so later table changes never
// rewrite history.
var activityPoints = map[ActivityCategory]int{
	ActivityPageVisit:    1,
	ActivityProteinSwap:  5,
	ActivityReservation:  8,
	ActivityReception:    6,
	ActivityPostCreation: 15,
	ActivityComment:      3,
	ActivityReaction:     2,
	ActivityEquipmentReq: 4,
}

// PointsFor returns the point value for a category, 0 for unknown ones.
func PointsFor(c ActivityCategory) int {
	return activityPoints[c]
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c ActivityCategory) bool {
	_, ok := activityPoints[c]
	return ok
}

// ActivityEvent is an immutable, timestamped fact. Created once, never
// updated or deleted.
type ActivityEvent struct {
	ID          string           `json:"id"`
	UserID      int64            `json:"user_id"`
	UserName    string           `json:"user_name"`
	Category    ActivityCategory `json:"category"`
	Description string           `json:"description"`
	Points      int              `json:"points"`
	Metadata    string           `json:"metadata,omitempty"`
	RecordedAt  time.Time        `json:"recorded_at"`
}

// UserAggregate is the derived points/level/streak/badges summary for one
// user. TotalPoints always equals the sum of the user's event points and
// Level always equals LevelFor(TotalPoints); both are recomputed from the
// event list on every insert, never patched incrementally.
type UserAggregate struct {
	UserID         int64      `json:"user_id"`
	Name           string     `json:"name"`
	Sector         string     `json:"sector,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	TotalPoints    int        `json:"total_points"`
	Level          int        `json:"level"`
	Streak         int        `json:"streak"`
	Badges         []string   `json:"badges"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Most-recent-first; populated on read paths that ask for it.
	Activities []ActivityEvent `json:"activities,omitempty"`
}
