package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultingoffice/internal/collection"
	"consultingoffice/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	store          *collection.Store[*domain.Booking]
	contextTimeout time.Duration
}

// NewBookingService returns a BookingService backed by an in-memory
// collection snapshot: the booking list is loaded from the store once and
// patched locally after each confirmed write. Search and counts are computed
// from the snapshot, never from a re-fetch.
func NewBookingService(bookingRepo domain.BookingRepository, timeout time.Duration) domain.BookingService {
	store := collection.New(bookingRepo.List, func(b *domain.Booking) string { return b.ID }).
		WithSort(func(a, b *domain.Booking) bool { return a.CreatedAt.After(b.CreatedAt) })
	return &bookingService{
		bookingRepo:    bookingRepo,
		store:          store,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if booking.TimeSlotID == "" {
		return fmt.Errorf("%w: booking time slot is required", domain.ErrInvalidInput)
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	if !domain.ValidBookingStatus(booking.Status) {
		return fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidInput, booking.Status)
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	s.store.Upsert(booking)
	return nil
}

func (s *bookingService) ListBookings(ctx context.Context, search, status string) (*domain.BookingListResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.store.Filter(ctx, func(b *domain.Booking) bool {
		if status != "" && b.Status != status {
			return false
		}
		return collection.MatchSubstring(search, b.Name, b.Email)
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	counts, err := s.store.Counts(ctx, func(b *domain.Booking) string { return b.Status })
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	return &domain.BookingListResult{Bookings: bookings, Counts: counts}, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidInput, status)
	}
	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	s.store.Upsert(updated)
	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.store.Remove(id)
	return nil
}

func (s *bookingService) RefreshBookings() {
	s.store.Invalidate()
}
