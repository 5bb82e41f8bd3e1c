package menu

import (
	"context"
	"time"

	"intraportal/internal/domain"
)

type ExchangeRepository interface {
	Create(ctx context.Context, e *domain.ProteinExchange) error
	ListByUserMonth(ctx context.Context, userID int64, year int, month time.Month) ([]domain.ProteinExchange, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error
}
