package menu

import (
	"context"
	"fmt"
	"time"

	"intraportal/internal/domain"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service struct {
	exchanges ExchangeRepository
	activity  ActivityRecorder
	log       *zap.Logger
}

func NewService(exchanges ExchangeRepository, activity ActivityRecorder, log *zap.Logger) *Service {
	return &Service{
		exchanges: exchanges,
		activity:  activity,
		log:       log,
	}
}

// RecordExchange stores one protein substitution for the caller and
// awards the corresponding points.
func (s *Service) RecordExchange(ctx context.Context, p domain.Principal, req RecordExchangeRequest) (*domain.ProteinExchange, error) {
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	meal := domain.Meal(req.Meal)
	if meal != domain.MealLunch && meal != domain.MealDinner {
		return nil, fmt.Errorf("%w: meal must be lunch or dinner", ErrValidation)
	}

	exchange := &domain.ProteinExchange{
		UserID:      p.UserID,
		UserName:    p.Name,
		Date:        date,
		Meal:        meal,
		FromProtein: req.FromProtein,
		ToProtein:   req.ToProtein,
		Reason:      req.Reason,
	}
	if err := s.exchanges.Create(ctx, exchange); err != nil {
		return nil, err
	}

	if s.activity != nil {
		metadata := fmt.Sprintf(`{"exchange_id":%d}`, exchange.ID)
		description := fmt.Sprintf("Swapped %s for %s", exchange.FromProtein, exchange.ToProtein)
		if err := s.activity.Record(ctx, p, domain.ActivityProteinSwap, description, metadata); err != nil {
			s.log.Warn("activity recording failed", zap.Int64("exchange_id", exchange.ID), zap.Error(err))
		}
	}
	return exchange, nil
}

// MonthHistory lists the caller's exchanges for one calendar month.
func (s *Service) MonthHistory(ctx context.Context, userID int64, year int, month time.Month) ([]domain.ProteinExchange, error) {
	if year < 2000 || month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid year or month", ErrValidation)
	}
	return s.exchanges.ListByUserMonth(ctx, userID, year, month)
}
