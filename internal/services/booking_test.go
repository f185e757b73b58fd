package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"consultingoffice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	byID   map[string]*domain.Booking
	nextID int

	listCalls int
	createErr error
	listErr   error
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	b.CreatedAt = time.Now()
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) List(ctx context.Context) ([]*domain.Booking, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Booking
	for _, b := range f.byID {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func seedBooking(t *testing.T, repo *fakeBookingRepo, name, email, status string, createdAt time.Time) *domain.Booking {
	t.Helper()
	repo.nextID++
	b := &domain.Booking{
		ID:         fmt.Sprintf("bk-%d", repo.nextID),
		TimeSlotID: "ts-1",
		Name:       name,
		Email:      email,
		Status:     status,
		CreatedAt:  createdAt,
	}
	repo.byID[b.ID] = b
	return b
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewBookingService(repo, 5*time.Second)

		booking := &domain.Booking{TimeSlotID: "ts-1", Name: "Ada", Email: "ada@example.com"}
		require.NoError(t, svc.CreateBooking(ctx, booking))
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.NotEmpty(t, booking.ID)
	})

	t.Run("missing time slot", func(t *testing.T) {
		svc := NewBookingService(newFakeBookingRepo(), 5*time.Second)
		err := svc.CreateBooking(ctx, &domain.Booking{Name: "Ada"})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewBookingService(newFakeBookingRepo(), 5*time.Second)
		err := svc.CreateBooking(ctx, &domain.Booking{TimeSlotID: "ts-1", Status: "approved"})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	seedBooking(t, repo, "Ada Lovelace", "ada@example.com", domain.BookingStatusPending, base)
	seedBooking(t, repo, "Grace Hopper", "grace@example.com", domain.BookingStatusConfirmed, base.Add(time.Hour))
	seedBooking(t, repo, "Alan Turing", "alan@example.com", domain.BookingStatusPending, base.Add(2*time.Hour))

	svc := NewBookingService(repo, 5*time.Second)

	t.Run("no filters returns all, newest first", func(t *testing.T) {
		res, err := svc.ListBookings(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, res.Bookings, 3)
		assert.Equal(t, "Alan Turing", res.Bookings[0].Name)
		assert.Equal(t, "Ada Lovelace", res.Bookings[2].Name)
	})

	t.Run("search is case-insensitive over name and email", func(t *testing.T) {
		res, err := svc.ListBookings(ctx, "ADA", "")
		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "Ada Lovelace", res.Bookings[0].Name)

		res, err = svc.ListBookings(ctx, "grace@", "")
		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
	})

	t.Run("status filter narrows results but not counts", func(t *testing.T) {
		res, err := svc.ListBookings(ctx, "", domain.BookingStatusPending)
		require.NoError(t, err)
		require.Len(t, res.Bookings, 2)
		assert.Equal(t, 2, res.Counts[domain.BookingStatusPending])
		assert.Equal(t, 1, res.Counts[domain.BookingStatusConfirmed])
	})

	t.Run("collection loads once across calls", func(t *testing.T) {
		calls := repo.listCalls
		_, err := svc.ListBookings(ctx, "", "")
		require.NoError(t, err)
		_, err = svc.ListBookings(ctx, "ada", "")
		require.NoError(t, err)
		assert.Equal(t, calls, repo.listCalls)
	})
}

func TestBookingService_ListBookings_LoadErrorRetries(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	repo.listErr = errors.New("db down")
	svc := NewBookingService(repo, 5*time.Second)

	_, err := svc.ListBookings(ctx, "", "")
	require.Error(t, err)

	// A failed load leaves no cached snapshot behind.
	repo.listErr = nil
	seedBooking(t, repo, "Ada", "ada@example.com", domain.BookingStatusPending, time.Now())
	res, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	b := seedBooking(t, repo, "Ada", "ada@example.com", domain.BookingStatusPending, time.Now())
	svc := NewBookingService(repo, 5*time.Second)

	_, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)

	// The snapshot was patched in place, not re-fetched.
	calls := repo.listCalls
	res, err := svc.ListBookings(ctx, "", domain.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, calls, repo.listCalls)

	_, err = svc.UpdateBookingStatus(ctx, b.ID, "approved")
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.UpdateBookingStatus(ctx, "bk-missing", domain.BookingStatusCancelled)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookingService_DeleteBooking(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	b := seedBooking(t, repo, "Ada", "ada@example.com", domain.BookingStatusPending, time.Now())
	svc := NewBookingService(repo, 5*time.Second)

	_, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(ctx, b.ID))

	calls := repo.listCalls
	res, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, res.Bookings)
	assert.Equal(t, calls, repo.listCalls)

	err = svc.DeleteBooking(ctx, b.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBookingService_RefreshBookings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, 5*time.Second)

	_, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)

	// A row written outside the service is invisible until a refresh.
	seedBooking(t, repo, "Ada", "ada@example.com", domain.BookingStatusPending, time.Now())
	res, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, res.Bookings)

	svc.RefreshBookings()
	res, err = svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
}
