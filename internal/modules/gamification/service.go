package gamification

import (
	"context"
	"sync"
	"time"

	"intraportal/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service converts user actions into points, levels, badges and a
// cross-user ranking. The aggregate is authoritative server-side state,
// recomputed from the in-order event list on every insert.
type Service struct {
	activities  ActivityRepository
	aggregates  AggregateRepository
	leaderboard *LeaderboardCache
	log         *zap.Logger

	// one recompute in flight per user
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewService(
	activities ActivityRepository,
	aggregates AggregateRepository,
	leaderboard *LeaderboardCache,
	log *zap.Logger,
) *Service {
	return &Service{
		activities:  activities,
		aggregates:  aggregates,
		leaderboard: leaderboard,
		log:         log,
		userLocks:   make(map[int64]*sync.Mutex),
	}
}

func (s *Service) lockFor(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// InitUser creates the zero aggregate on first observation of a user and
// is a no-op afterwards.
func (s *Service) InitUser(ctx context.Context, u *domain.User) (*domain.UserAggregate, error) {
	agg, err := s.aggregates.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if agg != nil {
		return agg, nil
	}

	agg = &domain.UserAggregate{
		UserID:      u.ID,
		Name:        u.Name,
		Sector:      u.Sector,
		AvatarURL:   u.AvatarURL,
		TotalPoints: 0,
		Level:       1,
		Streak:      0,
		Badges:      []string{},
	}
	if err := s.aggregates.Save(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

// Record satisfies the ActivityRecorder interface the feature modules
// depend on.
func (s *Service) Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error {
	return s.RecordActivity(ctx, p.UserID, category, description, metadata)
}

// RecordActivity appends one event for the user and recomputes the whole
// aggregate from the event list. Unknown or uninitialized users are a
// logged no-op: point awarding never blocks the triggering action.
func (s *Service) RecordActivity(ctx context.Context, userID int64, category domain.ActivityCategory, description, metadata string) error {
	if !domain.ValidCategory(category) {
		s.log.Warn("activity dropped: unknown category",
			zap.Int64("user_id", userID),
			zap.String("category", string(category)),
		)
		return nil
	}

	l := s.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	agg, err := s.aggregates.Get(ctx, userID)
	if err != nil {
		return err
	}
	if agg == nil {
		s.log.Warn("activity dropped: user not initialized", zap.Int64("user_id", userID))
		return nil
	}

	event := &domain.ActivityEvent{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserName:    agg.Name,
		Category:    category,
		Description: description,
		Points:      domain.PointsFor(category),
		Metadata:    metadata,
		RecordedAt:  time.Now(),
	}
	if err := s.activities.Insert(ctx, event); err != nil {
		return err
	}

	events, err := s.activities.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	total := 0
	for _, e := range events {
		total += e.Points
	}

	// Streak counts calendar days with activity. Same day: unchanged.
	// Any later day: +1. It deliberately never resets after a gap,
	// matching the observed product behavior.
	streak := agg.Streak
	if agg.LastActivityAt == nil || !sameCalendarDay(*agg.LastActivityAt, event.RecordedAt) {
		streak++
	}

	agg.TotalPoints = total
	agg.Level = LevelFor(total)
	agg.Streak = streak
	agg.Badges = ComputeBadges(events, total, streak)
	agg.LastActivityAt = &event.RecordedAt

	if err := s.aggregates.Save(ctx, agg); err != nil {
		return err
	}

	if err := s.leaderboard.Update(ctx, userID, total); err != nil {
		s.log.Warn("leaderboard cache update failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}

// Profile returns the aggregate with the full most-recent-first activity
// list attached. ErrUnknownUser for users never initialized.
func (s *Service) Profile(ctx context.Context, userID int64) (*domain.UserAggregate, error) {
	agg, err := s.aggregates.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, ErrUnknownUser
	}
	events, err := s.activities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	agg.Activities = events
	return agg, nil
}

// Rank is the 1-based position in the all-users list sorted by total
// points descending; the stable tiebreak keeps rank deterministic.
func (s *Service) Rank(ctx context.Context, userID int64) (int, error) {
	all, err := s.aggregates.ListByPointsDesc(ctx, 0)
	if err != nil {
		return 0, err
	}
	for i, a := range all {
		if a.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, ErrUnknownUser
}

// TopUsers returns at most limit aggregates sorted by descending total
// points. The Redis sorted set serves the id ordering when available; any
// cache failure falls back to the relational store.
func (s *Service) TopUsers(ctx context.Context, limit int) ([]domain.UserAggregate, error) {
	if limit <= 0 {
		return []domain.UserAggregate{}, nil
	}

	ids, err := s.leaderboard.TopIDs(ctx, limit)
	if err == nil && len(ids) > 0 {
		out := make([]domain.UserAggregate, 0, len(ids))
		for _, id := range ids {
			agg, aggErr := s.aggregates.Get(ctx, id)
			if aggErr != nil || agg == nil {
				out = nil
				break
			}
			out = append(out, *agg)
		}
		if out != nil {
			return out, nil
		}
	}

	return s.aggregates.ListByPointsDesc(ctx, limit)
}

func (s *Service) TotalActivityCount(ctx context.Context) (int64, error) {
	return s.activities.CountAll(ctx)
}

func (s *Service) CountByCategory(ctx context.Context, c domain.ActivityCategory) (int64, error) {
	return s.activities.CountByCategory(ctx, c)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
