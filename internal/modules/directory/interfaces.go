package directory

import (
	"context"

	"intraportal/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Search(ctx context.Context, query, sector string) ([]domain.User, error)
}

// AggregateReader exposes the points summary used to enrich directory
// entries; a missing aggregate means the user has no recorded activity.
type AggregateReader interface {
	Get(ctx context.Context, userID int64) (*domain.UserAggregate, error)
}
