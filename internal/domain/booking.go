package domain

import (
	"context"
	"time"
)

// Booking status values. The status is a flat enumeration: any status may be
// set to any other status directly, there are no transition rules.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusWaitlisted = "waitlisted"
)

// BookingStatuses lists every valid booking status.
var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusWaitlisted,
}

// ValidBookingStatus reports whether s is one of the known booking statuses.
func ValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Booking is a participant's reservation against a specific time slot.
// swagger:model Booking
type Booking struct {
	ID          string     `json:"id"`
	TimeSlotID  string     `json:"time_slot_id"`
	EventID     *string    `json:"event_id"`
	SessionID   *string    `json:"session_id"`
	BookingDate *time.Time `json:"booking_date"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	// UpdateStatus alters the status field only; all other fields are
	// untouched.
	UpdateStatus(ctx context.Context, id, status string) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

// BookingListResult is a filtered view over the booking collection together
// with per-status aggregate counts over the whole collection.
type BookingListResult struct {
	Bookings []*Booking     `json:"bookings"`
	Counts   map[string]int `json:"counts"`
}

// BookingService defines the business logic for booking administration.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	// ListBookings returns bookings matching the case-insensitive substring
	// search over name and email, optionally filtered by status, plus
	// per-status counts over the full collection.
	ListBookings(ctx context.Context, search, status string) (*BookingListResult, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	// RefreshBookings discards the in-memory collection snapshot so the next
	// list reloads from the store.
	RefreshBookings()
}
