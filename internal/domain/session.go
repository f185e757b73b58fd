package domain

import (
	"context"
	"time"
)

// EventSession represents a scheduled sub-activity of an Event, with its own
// time slots and delegates.
// swagger:model EventSession
type EventSession struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Location        *string   `json:"location"`
	Facilitator     *string   `json:"facilitator"`
	MaxParticipants *int      `json:"max_participants"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewEventSession returns a new EventSession with the given fields. ID and
// CreatedAt are typically set by the repository on create.
func NewEventSession(eventID, title string) *EventSession {
	return &EventSession{
		EventID:  eventID,
		Title:    title,
		IsActive: true,
	}
}

// TimeSlot is a concrete start/end interval under a session. Slots have no
// standalone lifecycle; they are created and deleted with their session.
// swagger:model TimeSlot
type TimeSlot struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// SessionUpdate holds the optional fields of a partial session update.
// Nil fields are left unchanged.
type SessionUpdate struct {
	Title           *string
	Description     *string
	Location        *string
	Facilitator     *string
	MaxParticipants *int
	IsActive        *bool
}

// SessionWithRelations bundles a session with its time slots and delegates.
type SessionWithRelations struct {
	Session   *EventSession `json:"session"`
	TimeSlots []*TimeSlot   `json:"time_slots"`
	Delegates []*Delegate   `json:"delegates"`
}

// SessionRepository defines the interface for session, time slot, and
// delegate storage. Time slots and delegates are owned by a session and the
// schema cascades deletes from the session row.
type SessionRepository interface {
	Create(ctx context.Context, session *EventSession) error
	GetByID(ctx context.Context, id string) (*EventSession, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventSession, error)
	ListActiveByEventID(ctx context.Context, eventID string) ([]*EventSession, error)
	Update(ctx context.Context, id string, upd SessionUpdate) (*EventSession, error)
	SetActive(ctx context.Context, id string, active bool) (*EventSession, error)
	Delete(ctx context.Context, id string) error

	CreateTimeSlots(ctx context.Context, slots []*TimeSlot) error
	ListTimeSlotsBySessionID(ctx context.Context, sessionID string) ([]*TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, sessionID, slotID string) error
}

// SessionService defines the business logic for session administration,
// including the all-or-nothing creation of a session with its dependents.
type SessionService interface {
	// CreateSession persists the session together with its time slots and
	// delegates as a single logical unit. The store offers no multi-table
	// transaction across these inserts, so a failure after the session row
	// exists triggers a compensating delete of that row.
	CreateSession(ctx context.Context, session *EventSession, slots []*TimeSlot, delegates []*Delegate) (*EventSession, error)
	// GetSessionWithRelations returns the session with its time slots
	// (ordered by start time) and delegates (ordered by creation time).
	// Relation fetch failures degrade to empty lists.
	GetSessionWithRelations(ctx context.Context, id string) (*SessionWithRelations, error)
	ListSessionsByEvent(ctx context.Context, eventID string) ([]*EventSession, error)
	ListActiveSessionsWithSlots(ctx context.Context, eventID string) ([]*SessionWithRelations, error)
	UpdateSession(ctx context.Context, id string, upd SessionUpdate) (*EventSession, error)
	// ToggleSessionActive reads the current active flag and writes back its
	// negation. Two round trips; concurrent togglers can race.
	ToggleSessionActive(ctx context.Context, id string) (*EventSession, error)
	DeleteSession(ctx context.Context, id string) error

	AddTimeSlot(ctx context.Context, sessionID string, slot *TimeSlot) (*TimeSlot, error)
	RemoveTimeSlot(ctx context.Context, sessionID, slotID string) error
	AddDelegate(ctx context.Context, sessionID string, delegate *Delegate) (*Delegate, error)
	RemoveDelegate(ctx context.Context, sessionID, delegateID string) error
}
