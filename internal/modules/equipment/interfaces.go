package equipment

import (
	"context"

	"intraportal/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.EquipmentRequest) error
	GetByID(ctx context.Context, id int64) (*domain.EquipmentRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.EquipmentRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.EquipmentRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus, decidedBy *int64) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error
}
