package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intraportal/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	requests RequestRepository
	activity ActivityRecorder
	log      *zap.Logger
}

func NewService(requests RequestRepository, activity ActivityRecorder, log *zap.Logger) *Service {
	return &Service{
		requests: requests,
		activity: activity,
		log:      log,
	}
}

// Submit opens a new equipment request for the caller.
func (s *Service) Submit(ctx context.Context, p domain.Principal, req SubmitRequest) (*domain.EquipmentRequest, error) {
	if strings.TrimSpace(req.Item) == "" {
		return nil, fmt.Errorf("%w: item is required", ErrValidation)
	}
	urgency := domain.RequestUrgency(req.Urgency)
	switch urgency {
	case "":
		urgency = domain.UrgencyNormal
	case domain.UrgencyLow, domain.UrgencyNormal, domain.UrgencyHigh:
	default:
		return nil, fmt.Errorf("%w: urgency must be low, normal or high", ErrValidation)
	}

	request := &domain.EquipmentRequest{
		RequesterID:   p.UserID,
		RequesterName: p.Name,
		Item:          req.Item,
		Justification: req.Justification,
		Urgency:       urgency,
		Status:        domain.RequestOpen,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if s.activity != nil {
		metadata := fmt.Sprintf(`{"request_id":%d}`, request.ID)
		description := fmt.Sprintf("Requested equipment: %s", request.Item)
		if err := s.activity.Record(ctx, p, domain.ActivityEquipmentReq, description, metadata); err != nil {
			s.log.Warn("activity recording failed", zap.Int64("request_id", request.ID), zap.Error(err))
		}
	}
	return request, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.EquipmentRequest, error) {
	return s.requests.ListByRequester(ctx, userID)
}

// ListOpen is for administrators reviewing the queue, oldest first.
func (s *Service) ListOpen(ctx context.Context) ([]domain.EquipmentRequest, error) {
	return s.requests.ListByStatus(ctx, domain.RequestOpen)
}

// Cancel withdraws the caller's own request while it is still open.
func (s *Service) Cancel(ctx context.Context, p domain.Principal, id int64) error {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if request.RequesterID != p.UserID {
		return ErrForbidden
	}
	if request.Status != domain.RequestOpen {
		return ErrDecided
	}
	return s.requests.UpdateStatus(ctx, id, domain.RequestCancelled, nil)
}

// Decide approves or denies an open request. The caller must be an
// administrator; the handler enforces the role, the service records who
// decided.
func (s *Service) Decide(ctx context.Context, p domain.Principal, id int64, approve bool) (*domain.EquipmentRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != domain.RequestOpen {
		return nil, ErrDecided
	}

	status := domain.RequestDenied
	if approve {
		status = domain.RequestApproved
	}
	decidedBy := p.UserID
	if err := s.requests.UpdateStatus(ctx, id, status, &decidedBy); err != nil {
		return nil, err
	}
	return s.requests.GetByID(ctx, id)
}
