package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"intraportal/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrOverlap is returned by the transactional create/update helpers when
// the requested interval collides with an existing booking.
var ErrOverlap = errors.New("booking interval overlaps an existing booking")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	LocalID        *string   `gorm:"column:local_id"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;uniqueIndex"`
	RoomID         int64     `gorm:"column:room_id;index"`
	Title          string    `gorm:"column:title"`
	OwnerName      string    `gorm:"column:owner_name"`
	OwnerEmail     string    `gorm:"column:owner_email;index"`
	StartTime      time.Time `gorm:"column:start_time"`
	EndTime        time.Time `gorm:"column:end_time"`
	ExternalRef    *string   `gorm:"column:external_ref"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:         m.ID,
		RoomID:     m.RoomID,
		Title:      m.Title,
		OwnerName:  m.OwnerName,
		OwnerEmail: m.OwnerEmail,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Status:     domain.BookingConfirmed,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.LocalID != nil {
		b.LocalID = *m.LocalID
	}
	if m.IdempotencyKey != nil {
		b.IdempotencyKey = *m.IdempotencyKey
	}
	if m.ExternalRef != nil {
		b.ExternalRef = *m.ExternalRef
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:         b.ID,
		RoomID:     b.RoomID,
		Title:      b.Title,
		OwnerName:  b.OwnerName,
		OwnerEmail: b.OwnerEmail,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.LocalID != "" {
		v := b.LocalID
		m.LocalID = &v
	}
	if b.IdempotencyKey != "" {
		v := b.IdempotencyKey
		m.IdempotencyKey = &v
	}
	if b.ExternalRef != "" {
		v := b.ExternalRef
		m.ExternalRef = &v
	}
	return m
}

// List returns every booking ordered by start time.
func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("start_time ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FirstOverlapping returns the earliest booking in the room intersecting
// [start, end) under half-open semantics, excluding excludeID when > 0.
// Returns nil when the interval is free.
func (r *BookingRepository) FirstOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (*domain.Booking, error) {
	var m bookingModel
	q := r.db.WithContext(ctx).
		Where("room_id = ? AND start_time < ? AND end_time > ?", roomID, end, start).
		Order("start_time ASC")
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	tx := q.First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CreateIfFree inserts b only when its interval does not collide with an
// existing booking in the same room. The conflict check and the insert run
// in one transaction so concurrent writers targeting the same room cannot
// interleave between them. A repeated idempotency key resolves to the
// earlier insert instead of a duplicate.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.IdempotencyKey != "" {
			var existing bookingModel
			err := tx.Where("idempotency_key = ?", b.IdempotencyKey).First(&existing).Error
			if err == nil {
				*b = *toDomainBooking(existing)
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("room_id = ? AND start_time < ? AND end_time > ?", b.RoomID, b.EndTime, b.StartTime).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		m := toBookingModel(b)
		m.ID = 0
		if err := tx.Create(&m).Error; err != nil {
			// A concurrent replay of the same write can race past the
			// key lookup above; the unique index resolves the race and
			// the earlier row wins.
			if b.IdempotencyKey != "" && isUniqueViolation(err) {
				var existing bookingModel
				if findErr := tx.Where("idempotency_key = ?", b.IdempotencyKey).First(&existing).Error; findErr == nil {
					*b = *toDomainBooking(existing)
					return nil
				}
			}
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// isUniqueViolation recognizes a unique-constraint error from either
// backing store (PostgreSQL 23505, sqlite constraint failure).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UpdateIfFree rewrites room/interval/title of an existing booking with the
// same transactional no-overlap guarantee, excluding the booking itself
// from the check.
func (r *BookingRepository) UpdateIfFree(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("room_id = ? AND start_time < ? AND end_time > ? AND id <> ?",
				b.RoomID, b.EndTime, b.StartTime, b.ID).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		updates := map[string]any{
			"room_id":    b.RoomID,
			"title":      b.Title,
			"start_time": b.StartTime,
			"end_time":   b.EndTime,
		}
		if err := tx.Model(&bookingModel{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
			return err
		}

		var m bookingModel
		if err := tx.First(&m, b.ID).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// Delete removes a booking. Deleting an id that does not exist is a no-op.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}
