package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AggregateRepository struct {
	db *gorm.DB
}

func NewAggregateRepository(db *gorm.DB) *AggregateRepository {
	return &AggregateRepository{db: db}
}

type userAggregateModel struct {
	UserID         int64      `gorm:"column:user_id;primaryKey"`
	Name           string     `gorm:"column:name"`
	Sector         string     `gorm:"column:sector"`
	AvatarURL      string     `gorm:"column:avatar_url"`
	TotalPoints    int        `gorm:"column:total_points;index"`
	Level          int        `gorm:"column:level"`
	Streak         int        `gorm:"column:streak"`
	Badges         string     `gorm:"column:badges"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (userAggregateModel) TableName() string { return "user_aggregates" }

func toDomainAggregate(m userAggregateModel) (*domain.UserAggregate, error) {
	a := &domain.UserAggregate{
		UserID:         m.UserID,
		Name:           m.Name,
		Sector:         m.Sector,
		AvatarURL:      m.AvatarURL,
		TotalPoints:    m.TotalPoints,
		Level:          m.Level,
		Streak:         m.Streak,
		Badges:         []string{},
		LastActivityAt: m.LastActivityAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Badges != "" {
		if err := json.Unmarshal([]byte(m.Badges), &a.Badges); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Get returns (nil, nil) for a user that was never initialized.
func (r *AggregateRepository) Get(ctx context.Context, userID int64) (*domain.UserAggregate, error) {
	var m userAggregateModel
	tx := r.db.WithContext(ctx).First(&m, "user_id = ?", userID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainAggregate(m)
}

// Save upserts the whole aggregate row keyed by user id.
func (r *AggregateRepository) Save(ctx context.Context, a *domain.UserAggregate) error {
	badges, err := json.Marshal(a.Badges)
	if err != nil {
		return err
	}
	m := userAggregateModel{
		UserID:         a.UserID,
		Name:           a.Name,
		Sector:         a.Sector,
		AvatarURL:      a.AvatarURL,
		TotalPoints:    a.TotalPoints,
		Level:          a.Level,
		Streak:         a.Streak,
		Badges:         string(badges),
		LastActivityAt: a.LastActivityAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&m).Error
}

// ListByPointsDesc orders by total points descending with user id as the
// stable tiebreak; limit <= 0 returns everyone.
func (r *AggregateRepository) ListByPointsDesc(ctx context.Context, limit int) ([]domain.UserAggregate, error) {
	q := r.db.WithContext(ctx).Order("total_points DESC, user_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []userAggregateModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.UserAggregate, 0, len(ms))
	for _, m := range ms {
		a, err := toDomainAggregate(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}
