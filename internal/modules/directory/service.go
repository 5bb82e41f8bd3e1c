package directory

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// Entry is one directory listing: the user plus their points summary.
type Entry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Sector    string `json:"sector,omitempty"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Points    int    `json:"points"`
	Level     int    `json:"level"`
}

type Service struct {
	users      UserRepository
	aggregates AggregateReader
	log        *zap.Logger
}

func NewService(users UserRepository, aggregates AggregateReader, log *zap.Logger) *Service {
	return &Service{
		users:      users,
		aggregates: aggregates,
		log:        log,
	}
}

// Search lists colleagues matching the name query and/or sector filter.
// Aggregate lookups are best effort; a lookup failure leaves the entry at
// zero points rather than failing the search.
func (s *Service) Search(ctx context.Context, query, sector string) ([]Entry, error) {
	users, err := s.users.Search(ctx, query, sector)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(users))
	for _, u := range users {
		entry := Entry{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Sector:    u.Sector,
			Role:      string(u.Role),
			AvatarURL: u.AvatarURL,
			Level:     1,
		}
		agg, err := s.aggregates.Get(ctx, u.ID)
		if err != nil {
			s.log.Warn("aggregate lookup failed", zap.Int64("user_id", u.ID), zap.Error(err))
		} else if agg != nil {
			entry.Points = agg.TotalPoints
			entry.Level = agg.Level
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entry := &Entry{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Sector:    u.Sector,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		Level:     1,
	}
	agg, err := s.aggregates.Get(ctx, u.ID)
	if err != nil {
		s.log.Warn("aggregate lookup failed", zap.Int64("user_id", u.ID), zap.Error(err))
	} else if agg != nil {
		entry.Points = agg.TotalPoints
		entry.Level = agg.Level
	}
	return entry, nil
}
