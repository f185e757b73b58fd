package domain

import (
	"context"
	"time"
)

// Event represents a top-level consultancy activity shown on the marketing
// site. Sessions belong to an event.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	ImageURL         string    `json:"image_url"`
	VideoURL         *string   `json:"video_url"`
	RegistrationLink *string   `json:"registration_link"`
	IsActive         bool      `json:"is_active"`
	DisplayOrder     int       `json:"display_order"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID and CreatedAt are
// typically set by the repository on create.
func NewEvent(title, imageURL string, displayOrder int, isActive bool) *Event {
	return &Event{
		Title:        title,
		ImageURL:     imageURL,
		DisplayOrder: displayOrder,
		IsActive:     isActive,
	}
}

// EventUpdate holds the optional fields of a partial event update.
// Nil fields are left unchanged.
type EventUpdate struct {
	Title            *string
	Description      *string
	ImageURL         *string
	VideoURL         *string
	RegistrationLink *string
	IsActive         *bool
	DisplayOrder     *int
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListActive(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event administration.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListActiveEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
