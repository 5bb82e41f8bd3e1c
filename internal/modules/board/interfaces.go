package board

import (
	"context"

	"intraportal/internal/domain"
)

type PostRepository interface {
	CreatePost(ctx context.Context, p *domain.Post) error
	ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
	CreateComment(ctx context.Context, c *domain.Comment) error
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
	ToggleReaction(ctx context.Context, postID, userID int64, kind string) (bool, error)
}

// ActivityRecorder awards points for board actions; failures never fail
// the action itself.
type ActivityRecorder interface {
	Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error
}
