package repository

import (
	"context"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

// ActivityRepository is the append-only per-user activity log. Events are
// inserted once and never updated or deleted.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

type activityEventModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;index"`
	UserName    string    `gorm:"column:user_name"`
	Category    string    `gorm:"column:category;index"`
	Description string    `gorm:"column:description"`
	Points      int       `gorm:"column:points"`
	Metadata    *string   `gorm:"column:metadata"`
	RecordedAt  time.Time `gorm:"column:recorded_at;index"`
}

func (activityEventModel) TableName() string { return "activity_events" }

func toDomainEvent(m activityEventModel) domain.ActivityEvent {
	e := domain.ActivityEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		Category:    domain.ActivityCategory(m.Category),
		Description: m.Description,
		Points:      m.Points,
		RecordedAt:  m.RecordedAt,
	}
	if m.Metadata != nil {
		e.Metadata = *m.Metadata
	}
	return e
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEvent) error {
	m := activityEventModel{
		ID:          e.ID,
		UserID:      e.UserID,
		UserName:    e.UserName,
		Category:    string(e.Category),
		Description: e.Description,
		Points:      e.Points,
		RecordedAt:  e.RecordedAt,
	}
	if e.Metadata != "" {
		v := e.Metadata
		m.Metadata = &v
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByUser returns the user's events most-recent-first.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ActivityEvent, error) {
	var ms []activityEventModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC, id DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ActivityEvent, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainEvent(m))
	}
	return out, nil
}

func (r *ActivityRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&activityEventModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *ActivityRepository) CountByCategory(ctx context.Context, c domain.ActivityCategory) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&activityEventModel{}).
		Where("category = ?", string(c)).Count(&cnt)
	return cnt, tx.Error
}
