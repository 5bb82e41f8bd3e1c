package repository

import (
	"context"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Capacity    int       `gorm:"column:capacity"`
	Color       string    `gorm:"column:color"`
	IsReception bool      `gorm:"column:is_reception"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) domain.Room {
	return domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		Capacity:    m.Capacity,
		Color:       m.Color,
		IsReception: m.IsReception,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	room := toDomainRoom(m)
	return &room, nil
}

// Create exists for the seeder; rooms are never created through the API.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		ID:          room.ID,
		Name:        room.Name,
		Capacity:    room.Capacity,
		Color:       room.Color,
		IsReception: room.IsReception,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	room.ID = m.ID
	room.CreatedAt = m.CreatedAt
	return nil
}
