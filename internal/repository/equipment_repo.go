package repository

import (
	"context"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentRequestModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RequesterID   int64     `gorm:"column:requester_id;index"`
	RequesterName string    `gorm:"column:requester_name"`
	Item          string    `gorm:"column:item"`
	Justification *string   `gorm:"column:justification"`
	Urgency       string    `gorm:"column:urgency"`
	Status        string    `gorm:"column:status;index"`
	DecidedBy     *int64    `gorm:"column:decided_by"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (equipmentRequestModel) TableName() string { return "equipment_requests" }

func toDomainRequest(m equipmentRequestModel) *domain.EquipmentRequest {
	req := &domain.EquipmentRequest{
		ID:            m.ID,
		RequesterID:   m.RequesterID,
		RequesterName: m.RequesterName,
		Item:          m.Item,
		Urgency:       domain.RequestUrgency(m.Urgency),
		Status:        domain.RequestStatus(m.Status),
		DecidedBy:     m.DecidedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Justification != nil {
		req.Justification = *m.Justification
	}
	return req
}

func (r *EquipmentRepository) Create(ctx context.Context, req *domain.EquipmentRequest) error {
	m := equipmentRequestModel{
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		Item:          req.Item,
		Urgency:       string(req.Urgency),
		Status:        string(req.Status),
	}
	if req.Justification != "" {
		v := req.Justification
		m.Justification = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.EquipmentRequest, error) {
	var m equipmentRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

func (r *EquipmentRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.EquipmentRequest, error) {
	var ms []equipmentRequestModel
	tx := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.EquipmentRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

func (r *EquipmentRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.EquipmentRequest, error) {
	var ms []equipmentRequestModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.EquipmentRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus, decidedBy *int64) error {
	updates := map[string]any{"status": string(status)}
	if decidedBy != nil {
		updates["decided_by"] = *decidedBy
	}
	return r.db.WithContext(ctx).Model(&equipmentRequestModel{}).
		Where("id = ?", id).Updates(updates).Error
}
