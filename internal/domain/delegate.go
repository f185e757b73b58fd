package domain

import (
	"context"
	"time"
)

// Delegate is a named participant or speaker profile attached to a session.
// swagger:model Delegate
type Delegate struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Organization *string   `json:"organization"`
	Position     *string   `json:"position"`
	Bio          *string   `json:"bio"`
	PhotoURL     *string   `json:"photo_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// DelegateRepository defines the interface for delegate storage. Delegates
// are owned by a session; the schema cascades deletes from the session row.
type DelegateRepository interface {
	CreateBatch(ctx context.Context, delegates []*Delegate) error
	ListBySessionID(ctx context.Context, sessionID string) ([]*Delegate, error)
	Delete(ctx context.Context, sessionID, delegateID string) error
}
