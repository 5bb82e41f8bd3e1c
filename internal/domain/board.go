package domain

import "time"

type PostCategory string

const (
	PostAnnouncement PostCategory = "announcement"
	PostGeneral      PostCategory = "general"
	PostClassifieds  PostCategory = "classifieds"
)

type Post struct {
	ID         int64        `json:"id"`
	AuthorID   int64        `json:"author_id"`
	AuthorName string       `json:"author_name"`
	Category   PostCategory `json:"category"`
	Title      string       `json:"title" validate:"required"`
	Body       string       `json:"body" validate:"required"`
	CreatedAt  time.Time    `json:"created_at"`

	Comments  []Comment  `json:"comments,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body" validate:"required"`
	CreatedAt  time.Time `json:"created_at"`
}

// Reaction is unique per (post, user, kind); posting the same kind twice
// toggles it off.
type Reaction struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
