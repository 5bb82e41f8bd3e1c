package scheduler

import (
	"context"
	"time"

	"intraportal/internal/domain"
)

// BookingStore is the authoritative booking set. Errors other than
// repository.ErrOverlap are treated as transport failures.
type BookingStore interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FirstOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (*domain.Booking, error)
	CreateIfFree(ctx context.Context, b *domain.Booking) error
	UpdateIfFree(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
}

type RoomStore interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// PendingQueue is the durable write-ahead queue for bookings the
// authoritative store could not take.
type PendingQueue interface {
	Enqueue(ctx context.Context, b *domain.Booking) error
	ListQueued(ctx context.Context) ([]domain.Booking, error)
	Remove(ctx context.Context, localID string) error
}

// SnapshotStore keeps the last good booking list for read fallback.
type SnapshotStore interface {
	Save(ctx context.Context, bookings []domain.Booking) error
	Load(ctx context.Context) ([]domain.Booking, bool, error)
}

// UserDirectory resolves the owner of a replayed pending booking back to
// a full principal, so confirmed replays can earn points.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ActivityRecorder awards points for confirmed bookings. Recording is
// fire-and-forget: failures are logged by the scheduler, never returned to
// the booking caller.
type ActivityRecorder interface {
	Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error
}
