package domain

import (
	"context"
	"time"
)

// Contact submission status values. These are convention-only strings, not an
// enforced state machine.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in-progress"
	ContactStatusCompleted  = "completed"
	ContactStatusClosed     = "closed"
)

// ContactStatuses lists the conventional contact statuses, in workflow order.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusCompleted,
	ContactStatusClosed,
}

// ContactSubmission is a message sent through the public contact form.
// swagger:model ContactSubmission
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactUpdate holds the optional fields of a partial contact update.
// Nil fields are left unchanged.
type ContactUpdate struct {
	Status *string
	Notes  *string
}

// ContactRepository defines the interface for contact submission storage
type ContactRepository interface {
	Create(ctx context.Context, c *ContactSubmission) error
	List(ctx context.Context) ([]*ContactSubmission, error)
	Update(ctx context.Context, id string, upd ContactUpdate) (*ContactSubmission, error)
	Delete(ctx context.Context, id string) error
}

// ContactListResult is a filtered view over the contact collection together
// with per-status aggregate counts over the whole collection.
type ContactListResult struct {
	Contacts []*ContactSubmission `json:"contacts"`
	Counts   map[string]int       `json:"counts"`
}

// ContactNotification carries the data rendered into the owner notification
// email after a public contact submission.
type ContactNotification struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, html,
// and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// ContactService defines the business logic for contact submissions.
type ContactService interface {
	// SubmitContact stores a new submission with status "new" and sends a
	// best-effort notification email; a send failure is logged, not surfaced.
	SubmitContact(ctx context.Context, c *ContactSubmission) error
	// ListContacts returns submissions matching the case-insensitive
	// substring search over name and email, optionally filtered by status,
	// plus per-status counts over the full collection.
	ListContacts(ctx context.Context, search, status string) (*ContactListResult, error)
	UpdateContact(ctx context.Context, id string, upd ContactUpdate) (*ContactSubmission, error)
	DeleteContact(ctx context.Context, id string) error
	// RefreshContacts discards the in-memory collection snapshot so the next
	// list reloads from the store.
	RefreshContacts()
}
