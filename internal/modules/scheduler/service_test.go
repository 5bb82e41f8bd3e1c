package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"intraportal/internal/domain"
	"intraportal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingStore) FirstOverlapping(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (*domain.Booking, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingStore) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingStore) UpdateIfFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRoomStore struct {
	mock.Mock
}

func (m *mockRoomStore) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type mockPendingQueue struct {
	mock.Mock
}

func (m *mockPendingQueue) Enqueue(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockPendingQueue) ListQueued(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockPendingQueue) Remove(ctx context.Context, localID string) error {
	args := m.Called(ctx, localID)
	return args.Error(0)
}

type mockSnapshotStore struct {
	mock.Mock
}

func (m *mockSnapshotStore) Save(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *mockSnapshotStore) Load(ctx context.Context) ([]domain.Booking, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Bool(1), args.Error(2)
}

type mockActivityRecorder struct {
	mock.Mock
}

func (m *mockActivityRecorder) Record(ctx context.Context, p domain.Principal, category domain.ActivityCategory, description, metadata string) error {
	args := m.Called(ctx, p, category, description, metadata)
	return args.Error(0)
}

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type schedulerMocks struct {
	bookings  *mockBookingStore
	rooms     *mockRoomStore
	queue     *mockPendingQueue
	snapshots *mockSnapshotStore
	activity  *mockActivityRecorder
	users     *mockUserDirectory
}

func newTestService() (*Service, *schedulerMocks) {
	m := &schedulerMocks{
		bookings:  new(mockBookingStore),
		rooms:     new(mockRoomStore),
		queue:     new(mockPendingQueue),
		snapshots: new(mockSnapshotStore),
		activity:  new(mockActivityRecorder),
		users:     new(mockUserDirectory),
	}
	svc := NewService(m.bookings, m.rooms, m.queue, m.snapshots, m.activity, m.users, zap.NewNop())
	return svc, m
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

var alice = domain.Principal{UserID: 1, Email: "alice@portal.local", Name: "Alice"}

func TestProposeBooking_Success(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("List", mock.Anything).Return([]domain.Booking{}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		b := args.Get(1).(*domain.Booking)
		b.ID = 42
		b.Status = domain.BookingConfirmed
	}).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2, Name: "Sala Foco"}, nil)
	m.activity.On("Record", mock.Anything, alice, domain.ActivityReservation, mock.Anything, mock.Anything).Return(nil)

	b, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Planning", StartTime: at(10), EndTime: at(11),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "alice@portal.local", b.OwnerEmail)
	assert.NotEmpty(t, b.IdempotencyKey)
	m.activity.AssertCalled(t, "Record", mock.Anything, alice, domain.ActivityReservation, mock.Anything, mock.Anything)
}

func TestProposeBooking_ReceptionRoomCategory(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("List", mock.Anything).Return([]domain.Booking{}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.Room{ID: 5, Name: "Recepção", IsReception: true}, nil)
	m.activity.On("Record", mock.Anything, alice, domain.ActivityReception, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 5, Title: "Visitor", StartTime: at(14), EndTime: at(15),
	})

	assert.NoError(t, err)
	m.activity.AssertCalled(t, "Record", mock.Anything, alice, domain.ActivityReception, mock.Anything, mock.Anything)
}

func TestProposeBooking_Conflict(t *testing.T) {
	svc, m := newTestService()

	existing := domain.Booking{ID: 7, RoomID: 2, StartTime: at(10), EndTime: at(11)}
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{existing}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Clash", StartTime: at(10).Add(30 * time.Minute), EndTime: at(11).Add(30 * time.Minute),
	})

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.RoomID)
	assert.Equal(t, at(10), conflict.Start)
	m.bookings.AssertNotCalled(t, "CreateIfFree", mock.Anything, mock.Anything)
}

func TestProposeBooking_TouchingBoundariesAllowed(t *testing.T) {
	svc, m := newTestService()

	existing := domain.Booking{ID: 7, RoomID: 2, StartTime: at(10), EndTime: at(11)}
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{existing}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2}, nil)
	m.activity.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Back to back", StartTime: at(11), EndTime: at(12),
	})

	assert.NoError(t, err)
}

func TestProposeBooking_OtherRoomNoConflict(t *testing.T) {
	svc, m := newTestService()

	existing := domain.Booking{ID: 7, RoomID: 3, StartTime: at(10), EndTime: at(11)}
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{existing}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2}, nil)
	m.activity.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Same slot, other room", StartTime: at(10), EndTime: at(11),
	})

	assert.NoError(t, err)
}

func TestProposeBooking_InvalidInterval(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Backwards", StartTime: at(12), EndTime: at(11),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Empty", StartTime: at(11), EndTime: at(11),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProposeBooking_StoreDownQueuesPending(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("List", mock.Anything).Return([]domain.Booking{}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	m.queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Offline", StartTime: at(9), EndTime: at(10),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.NotEmpty(t, b.LocalID)
	m.queue.AssertCalled(t, "Enqueue", mock.Anything, mock.Anything)
	// No points until the write reaches the authoritative store.
	m.activity.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProposeBooking_ConflictAgainstQueuedPending(t *testing.T) {
	svc, m := newTestService()

	queued := domain.Booking{LocalID: "local-1", RoomID: 2, StartTime: at(10), EndTime: at(11), Status: domain.BookingPending}
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{queued}, nil)

	_, err := svc.ProposeBooking(context.Background(), alice, ProposeBookingRequest{
		RoomID: 2, Title: "Clash with pending", StartTime: at(10), EndTime: at(11),
	})

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUpdateBooking_NotOwner(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Booking{ID: 7, RoomID: 2, OwnerEmail: "bob@portal.local", StartTime: at(10), EndTime: at(11)}
	m.bookings.On("GetByID", mock.Anything, int64(7)).Return(owned, nil)

	_, err := svc.UpdateBooking(context.Background(), alice, 7, UpdateBookingRequest{
		RoomID: 2, Title: "Takeover", StartTime: at(10), EndTime: at(11),
	})

	assert.ErrorIs(t, err, ErrForbidden)
	m.bookings.AssertNotCalled(t, "UpdateIfFree", mock.Anything, mock.Anything)
}

func TestUpdateBooking_OwnerEmailCaseInsensitive(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Booking{ID: 7, RoomID: 2, OwnerEmail: "Alice@Portal.Local", StartTime: at(10), EndTime: at(11)}
	m.bookings.On("GetByID", mock.Anything, int64(7)).Return(owned, nil)
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{*owned}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("UpdateIfFree", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.UpdateBooking(context.Background(), alice, 7, UpdateBookingRequest{
		RoomID: 2, Title: "Moved", StartTime: at(13), EndTime: at(14),
	})

	assert.NoError(t, err)
	assert.Equal(t, at(13), b.StartTime)
	assert.Equal(t, "Moved", b.Title)
}

func TestUpdateBooking_NotFound(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateBooking(context.Background(), alice, 99, UpdateBookingRequest{
		RoomID: 2, Title: "Ghost", StartTime: at(10), EndTime: at(11),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBooking_ExcludesSelfFromConflictCheck(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Booking{ID: 7, RoomID: 2, OwnerEmail: alice.Email, StartTime: at(10), EndTime: at(11)}
	m.bookings.On("GetByID", mock.Anything, int64(7)).Return(owned, nil)
	m.bookings.On("List", mock.Anything).Return([]domain.Booking{*owned}, nil)
	m.snapshots.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)
	m.bookings.On("UpdateIfFree", mock.Anything, mock.Anything).Return(nil)

	// Shrinking inside its own old interval must not be a conflict.
	_, err := svc.UpdateBooking(context.Background(), alice, 7, UpdateBookingRequest{
		RoomID: 2, Title: "Shorter", StartTime: at(10), EndTime: at(10).Add(30 * time.Minute),
	})

	assert.NoError(t, err)
}

func TestDeleteBooking_Owner(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Booking{ID: 7, OwnerEmail: alice.Email}
	m.bookings.On("GetByID", mock.Anything, int64(7)).Return(owned, nil)
	m.bookings.On("Delete", mock.Anything, int64(7)).Return(nil)

	assert.NoError(t, svc.DeleteBooking(context.Background(), alice, 7))
	m.bookings.AssertCalled(t, "Delete", mock.Anything, int64(7))
}

func TestDeleteBooking_NotOwner(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Booking{ID: 7, OwnerEmail: "bob@portal.local"}
	m.bookings.On("GetByID", mock.Anything, int64(7)).Return(owned, nil)

	assert.ErrorIs(t, svc.DeleteBooking(context.Background(), alice, 7), ErrForbidden)
	m.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBooking_MissingIsNoop(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	assert.NoError(t, svc.DeleteBooking(context.Background(), alice, 99))
	m.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListBookings_SnapshotFallback(t *testing.T) {
	svc, m := newTestService()

	saved := []domain.Booking{{ID: 1, RoomID: 2, StartTime: at(10), EndTime: at(11), Status: domain.BookingConfirmed}}
	queued := []domain.Booking{{LocalID: "local-1", RoomID: 2, StartTime: at(8), EndTime: at(9), Status: domain.BookingPending}}
	m.bookings.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	m.snapshots.On("Load", mock.Anything).Return(saved, true, nil)
	m.queue.On("ListQueued", mock.Anything).Return(queued, nil)

	out := svc.ListBookings(context.Background())

	assert.Len(t, out, 2)
	// Sorted by start time: the pending one starts earlier.
	assert.Equal(t, "local-1", out[0].LocalID)
	assert.Equal(t, int64(1), out[1].ID)
}

func TestListBookings_NoSnapshotDegradesToPendingOnly(t *testing.T) {
	svc, m := newTestService()

	m.bookings.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	m.snapshots.On("Load", mock.Anything).Return(nil, false, nil)
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{}, nil)

	out := svc.ListBookings(context.Background())
	assert.Empty(t, out)
}

func TestReconcilePending_PromotesAndAwards(t *testing.T) {
	svc, m := newTestService()

	pending := domain.Booking{
		LocalID: "local-1", IdempotencyKey: "key-1", RoomID: 2,
		Title: "Offline", OwnerName: "Alice", OwnerEmail: alice.Email,
		StartTime: at(9), EndTime: at(10), Status: domain.BookingPending,
	}
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{pending}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		b := args.Get(1).(*domain.Booking)
		b.ID = 42
		b.Status = domain.BookingConfirmed
	}).Return(nil)
	m.queue.On("Remove", mock.Anything, "local-1").Return(nil)
	m.users.On("GetByEmail", mock.Anything, alice.Email).Return(&domain.User{
		ID: 1, Email: alice.Email, Name: "Alice", Role: domain.RoleEmployee,
	}, nil)
	m.rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2}, nil)
	m.activity.On("Record", mock.Anything, mock.Anything, domain.ActivityReservation, mock.Anything, mock.Anything).Return(nil)

	svc.ReconcilePending(context.Background())

	m.queue.AssertCalled(t, "Remove", mock.Anything, "local-1")
	m.activity.AssertNumberOfCalls(t, "Record", 1)
}

func TestReconcilePending_ConflictDropsEntry(t *testing.T) {
	svc, m := newTestService()

	pending := domain.Booking{LocalID: "local-1", RoomID: 2, StartTime: at(9), EndTime: at(10)}
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{pending}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(repository.ErrOverlap)
	m.queue.On("Remove", mock.Anything, "local-1").Return(nil)

	svc.ReconcilePending(context.Background())

	m.queue.AssertCalled(t, "Remove", mock.Anything, "local-1")
	m.activity.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePending_TransportFailureKeepsEntry(t *testing.T) {
	svc, m := newTestService()

	pending := domain.Booking{LocalID: "local-1", RoomID: 2, StartTime: at(9), EndTime: at(10)}
	m.queue.On("ListQueued", mock.Anything).Return([]domain.Booking{pending}, nil)
	m.bookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(errors.New("still down"))

	svc.ReconcilePending(context.Background())

	m.queue.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestBookingOverlapsSemantics(t *testing.T) {
	b := domain.Booking{StartTime: at(10), EndTime: at(11)}

	assert.True(t, b.Overlaps(at(10).Add(30*time.Minute), at(11).Add(30*time.Minute)))
	assert.True(t, b.Overlaps(at(10), at(11)))
	assert.False(t, b.Overlaps(at(11), at(12)), "shared boundary is not a conflict")
	assert.False(t, b.Overlaps(at(9), at(10)), "shared boundary is not a conflict")
}
