package repository

import (
	"context"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

// OutboxRepository is the durable pending-write queue for bookings that
// could not reach the authoritative store. It lives in the local sqlite
// database, so queued writes survive restarts.
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

type pendingBookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	LocalID        string    `gorm:"column:local_id;uniqueIndex"`
	IdempotencyKey string    `gorm:"column:idempotency_key"`
	RoomID         int64     `gorm:"column:room_id"`
	Title          string    `gorm:"column:title"`
	OwnerName      string    `gorm:"column:owner_name"`
	OwnerEmail     string    `gorm:"column:owner_email"`
	StartTime      time.Time `gorm:"column:start_time"`
	EndTime        time.Time `gorm:"column:end_time"`
	ExternalRef    *string   `gorm:"column:external_ref"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (pendingBookingModel) TableName() string { return "pending_bookings" }

func toPendingBooking(m pendingBookingModel) domain.Booking {
	b := domain.Booking{
		LocalID:        m.LocalID,
		IdempotencyKey: m.IdempotencyKey,
		RoomID:         m.RoomID,
		Title:          m.Title,
		OwnerName:      m.OwnerName,
		OwnerEmail:     m.OwnerEmail,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		Status:         domain.BookingPending,
		CreatedAt:      m.CreatedAt,
	}
	if m.ExternalRef != nil {
		b.ExternalRef = *m.ExternalRef
	}
	return b
}

func (r *OutboxRepository) Enqueue(ctx context.Context, b *domain.Booking) error {
	m := pendingBookingModel{
		LocalID:        b.LocalID,
		IdempotencyKey: b.IdempotencyKey,
		RoomID:         b.RoomID,
		Title:          b.Title,
		OwnerName:      b.OwnerName,
		OwnerEmail:     b.OwnerEmail,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
	}
	if b.ExternalRef != "" {
		v := b.ExternalRef
		m.ExternalRef = &v
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListQueued returns pending bookings in enqueue order.
func (r *OutboxRepository) ListQueued(ctx context.Context) ([]domain.Booking, error) {
	var ms []pendingBookingModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, toPendingBooking(m))
	}
	return out, nil
}

func (r *OutboxRepository) Remove(ctx context.Context, localID string) error {
	return r.db.WithContext(ctx).
		Where("local_id = ?", localID).
		Delete(&pendingBookingModel{}).Error
}
