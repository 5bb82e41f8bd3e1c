package gamification

import (
	"context"

	"intraportal/internal/domain"
)

// ActivityRepository is the append-only event log.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	ListByUser(ctx context.Context, userID int64) ([]domain.ActivityEvent, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, c domain.ActivityCategory) (int64, error)
}

// AggregateRepository stores the derived per-user aggregates.
type AggregateRepository interface {
	Get(ctx context.Context, userID int64) (*domain.UserAggregate, error)
	Save(ctx context.Context, a *domain.UserAggregate) error
	ListByPointsDesc(ctx context.Context, limit int) ([]domain.UserAggregate, error)
}
