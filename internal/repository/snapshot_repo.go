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

// SnapshotRepository keeps the last successfully fetched booking list in
// local storage, so reads degrade to stale data instead of errors when the
// authoritative store is unreachable.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

type bookingSnapshotModel struct {
	ID      int64     `gorm:"column:id;primaryKey"`
	Payload []byte    `gorm:"column:payload"`
	SavedAt time.Time `gorm:"column:saved_at"`
}

func (bookingSnapshotModel) TableName() string { return "booking_snapshots" }

// single-row table
const snapshotRowID = 1

func (r *SnapshotRepository) Save(ctx context.Context, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	m := bookingSnapshotModel{
		ID:      snapshotRowID,
		Payload: payload,
		SavedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&m).Error
}

// Load returns the snapshot and true, or (nil, false) when none was ever
// saved.
func (r *SnapshotRepository) Load(ctx context.Context) ([]domain.Booking, bool, error) {
	var m bookingSnapshotModel
	tx := r.db.WithContext(ctx).First(&m, snapshotRowID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, tx.Error
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(m.Payload, &bookings); err != nil {
		return nil, false, err
	}
	return bookings, true, nil
}
