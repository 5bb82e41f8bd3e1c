package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"intraportal/internal/domain"
	"intraportal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service maintains a collision-free set of bookings per room. Writes that
// cannot reach the authoritative store land in a durable pending queue and
// are replayed by ReconcilePending.
type Service struct {
	bookings  BookingStore
	rooms     RoomStore
	queue     PendingQueue
	snapshots SnapshotStore
	activity  ActivityRecorder
	users     UserDirectory
	log       *zap.Logger
}

func NewService(
	bookings BookingStore,
	rooms RoomStore,
	queue PendingQueue,
	snapshots SnapshotStore,
	activity ActivityRecorder,
	users UserDirectory,
	log *zap.Logger,
) *Service {
	return &Service{
		bookings:  bookings,
		rooms:     rooms,
		queue:     queue,
		snapshots: snapshots,
		activity:  activity,
		users:     users,
		log:       log,
	}
}

// ListRooms exposes the static room catalog for the calendar view.
func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

// ListBookings returns confirmed bookings merged with queued pending ones,
// ordered by start time. A store failure degrades to the last snapshot
// (empty when none exists); the caller never sees a read error.
func (s *Service) ListBookings(ctx context.Context) []domain.Booking {
	confirmed, err := s.bookings.List(ctx)
	if err != nil {
		s.log.Warn("booking list unavailable, falling back to snapshot", zap.Error(err))
		snapshot, ok, snapErr := s.snapshots.Load(ctx)
		if snapErr != nil {
			s.log.Warn("snapshot load failed", zap.Error(snapErr))
		}
		if !ok {
			confirmed = nil
		} else {
			confirmed = snapshot
		}
	} else {
		if snapErr := s.snapshots.Save(ctx, confirmed); snapErr != nil {
			s.log.Warn("snapshot save failed", zap.Error(snapErr))
		}
	}

	out := make([]domain.Booking, 0, len(confirmed))
	out = append(out, confirmed...)

	queued, err := s.queue.ListQueued(ctx)
	if err != nil {
		s.log.Warn("pending queue unavailable", zap.Error(err))
	} else {
		out = append(out, queued...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// ProposeBooking validates the interval, checks for conflicts against the
// currently known booking set before any store call, then submits. On a
// store failure the booking is kept locally as pending; no activity event
// is emitted until the pending write is confirmed.
func (s *Service) ProposeBooking(ctx context.Context, p domain.Principal, req ProposeBookingRequest) (*domain.Booking, error) {
	if err := validateInterval(req); err != nil {
		return nil, err
	}

	known := s.ListBookings(ctx)
	if hit := findOverlap(known, req.RoomID, req.StartTime, req.EndTime, 0, ""); hit != nil {
		return nil, &ConflictError{RoomID: req.RoomID, Start: hit.StartTime, End: hit.EndTime}
	}

	b := &domain.Booking{
		IdempotencyKey: uuid.NewString(),
		RoomID:         req.RoomID,
		Title:          req.Title,
		OwnerName:      p.Name,
		OwnerEmail:     p.Email,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ExternalRef:    req.ExternalRef,
	}

	err := s.bookings.CreateIfFree(ctx, b)
	switch {
	case err == nil:
		s.recordBookingActivity(ctx, p, b)
		return b, nil

	case errors.Is(err, repository.ErrOverlap):
		return nil, s.conflictFor(ctx, req.RoomID, req.StartTime, req.EndTime, 0)

	default:
		// Transport failure: keep the write locally and let the
		// reconciler replay it. The pending booking participates in
		// conflict checks but earns no points yet.
		b.LocalID = uuid.NewString()
		b.Status = domain.BookingPending
		if qErr := s.queue.Enqueue(ctx, b); qErr != nil {
			return nil, fmt.Errorf("booking submit failed and could not be queued: %w", qErr)
		}
		s.log.Warn("booking queued for later submission",
			zap.String("local_id", b.LocalID),
			zap.Int64("room_id", b.RoomID),
			zap.Error(err),
		)
		return b, nil
	}
}

// UpdateBooking edits room/time/title of a confirmed booking. Only the
// owner (matched by stored owner email) may update; the overlap check
// excludes the booking itself.
func (s *Service) UpdateBooking(ctx context.Context, p domain.Principal, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := validateInterval(ProposeBookingRequest{
		RoomID: req.RoomID, Title: req.Title, StartTime: req.StartTime, EndTime: req.EndTime,
	}); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(b.OwnerEmail, p.Email) {
		return nil, ErrForbidden
	}

	known := s.ListBookings(ctx)
	if hit := findOverlap(known, req.RoomID, req.StartTime, req.EndTime, id, ""); hit != nil {
		return nil, &ConflictError{RoomID: req.RoomID, Start: hit.StartTime, End: hit.EndTime}
	}

	b.RoomID = req.RoomID
	b.Title = req.Title
	b.StartTime = req.StartTime
	b.EndTime = req.EndTime

	if err := s.bookings.UpdateIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, s.conflictFor(ctx, req.RoomID, req.StartTime, req.EndTime, id)
		}
		return nil, err
	}
	return b, nil
}

// DeleteBooking removes an owned booking. Deleting an id that no longer
// exists is a no-op, so a second delete of the same id succeeds.
func (s *Service) DeleteBooking(ctx context.Context, p domain.Principal, id int64) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !strings.EqualFold(b.OwnerEmail, p.Email) {
		return ErrForbidden
	}
	return s.bookings.Delete(ctx, id)
}

// ReconcilePending replays the pending queue in order. Successful submits
// are removed from the queue, promoted to confirmed ids, and earn their
// reservation points. Transport failures stay queued for the next pass;
// the replay is idempotent via per-booking idempotency keys. Failures are
// logged only, never surfaced.
func (s *Service) ReconcilePending(ctx context.Context) {
	queued, err := s.queue.ListQueued(ctx)
	if err != nil {
		s.log.Warn("pending reconcile: queue unavailable", zap.Error(err))
		return
	}

	for _, pending := range queued {
		b := pending
		err := s.bookings.CreateIfFree(ctx, &b)
		switch {
		case err == nil:
			if rmErr := s.queue.Remove(ctx, pending.LocalID); rmErr != nil {
				s.log.Warn("pending reconcile: dequeue failed", zap.String("local_id", pending.LocalID), zap.Error(rmErr))
				continue
			}
			s.log.Info("pending booking confirmed",
				zap.String("local_id", pending.LocalID),
				zap.Int64("id", b.ID),
			)
			p := domain.Principal{Name: pending.OwnerName, Email: pending.OwnerEmail}
			if owner := s.principalFor(ctx, pending.OwnerEmail); owner != nil {
				p = *owner
			}
			s.recordBookingActivity(ctx, p, &b)

		case errors.Is(err, repository.ErrOverlap):
			// The slot was taken while the write sat in the queue; it can
			// never succeed, so drop it rather than retry forever.
			s.log.Warn("pending booking dropped: slot no longer free",
				zap.String("local_id", pending.LocalID),
				zap.Int64("room_id", pending.RoomID),
			)
			if rmErr := s.queue.Remove(ctx, pending.LocalID); rmErr != nil {
				s.log.Warn("pending reconcile: dequeue failed", zap.String("local_id", pending.LocalID), zap.Error(rmErr))
			}

		default:
			s.log.Debug("pending booking still unsubmittable",
				zap.String("local_id", pending.LocalID),
				zap.Error(err),
			)
		}
	}
}

// conflictFor builds the ConflictError for an interval the store rejected,
// looking up the colliding booking for detail. When the lookup itself
// fails the requested interval is reported instead.
func (s *Service) conflictFor(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) error {
	hit, err := s.bookings.FirstOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil || hit == nil {
		return &ConflictError{RoomID: roomID, Start: start, End: end}
	}
	return &ConflictError{RoomID: roomID, Start: hit.StartTime, End: hit.EndTime}
}

// recordBookingActivity awards points for a confirmed booking. Reception
// desks earn the reception-appointment category, everything else the
// room-reservation one. Failures are logged and swallowed: point awarding
// must never fail the booking.
func (s *Service) recordBookingActivity(ctx context.Context, p domain.Principal, b *domain.Booking) {
	if s.activity == nil {
		return
	}
	category := domain.ActivityReservation
	description := fmt.Sprintf("Reserved a room: %s", b.Title)
	if room, err := s.rooms.GetByID(ctx, b.RoomID); err == nil && room.IsReception {
		category = domain.ActivityReception
		description = fmt.Sprintf("Scheduled a reception appointment: %s", b.Title)
	}
	metadata := fmt.Sprintf(`{"booking_id":%d,"room_id":%d}`, b.ID, b.RoomID)
	if err := s.activity.Record(ctx, p, category, description, metadata); err != nil {
		s.log.Warn("activity recording failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}

// principalFor resolves the acting principal for a replayed pending write
// from its stored owner email.
func (s *Service) principalFor(ctx context.Context, email string) *domain.Principal {
	if s.users == nil {
		return nil
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}
	return &domain.Principal{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Sector: u.Sector,
		Role:   string(u.Role),
	}
}

func validateInterval(req ProposeBookingRequest) error {
	if req.RoomID <= 0 || strings.TrimSpace(req.Title) == "" {
		return ErrValidation
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.StartTime.Before(req.EndTime) {
		return ErrValidation
	}
	return nil
}

// findOverlap scans the known booking set for an interval collision in
// roomID under half-open semantics, skipping the booking being edited
// (by id or local id). O(n) per check, which is fine at a weekly or
// monthly booking horizon.
func findOverlap(known []domain.Booking, roomID int64, start, end time.Time, excludeID int64, excludeLocalID string) *domain.Booking {
	for i := range known {
		b := &known[i]
		if b.RoomID != roomID {
			continue
		}
		if excludeID > 0 && b.ID == excludeID {
			continue
		}
		if excludeLocalID != "" && b.LocalID == excludeLocalID {
			continue
		}
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
