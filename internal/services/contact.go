package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"consultingoffice/internal/collection"
	"consultingoffice/internal/domain"
)

type contactService struct {
	contactRepo    domain.ContactRepository
	store          *collection.Store[*domain.ContactSubmission]
	mailer         domain.Mailer
	renderer       domain.EmailTemplateRenderer
	notifyEmail    string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewContactService returns a ContactService backed by an in-memory
// collection snapshot, patched locally after each confirmed write. When
// notifyEmail is non-empty, each public submission triggers a best-effort
// notification email.
func NewContactService(contactRepo domain.ContactRepository,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	notifyEmail string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ContactService {
	store := collection.New(contactRepo.List, func(c *domain.ContactSubmission) string { return c.ID }).
		WithSort(func(a, b *domain.ContactSubmission) bool { return a.CreatedAt.After(b.CreatedAt) })
	return &contactService{
		contactRepo:    contactRepo,
		store:          store,
		mailer:         mailer,
		renderer:       renderer,
		notifyEmail:    notifyEmail,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *contactService) SubmitContact(ctx context.Context, c *domain.ContactSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.Message = strings.TrimSpace(c.Message)
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return fmt.Errorf("%w: name, email, and message are required", domain.ErrInvalidInput)
	}
	c.Status = domain.ContactStatusNew

	if err := s.contactRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	s.store.Upsert(c)

	// Notification is best effort: the submission is already stored, so a
	// send failure is logged and not surfaced to the visitor.
	if s.notifyEmail != "" {
		s.sendNotification(ctx, c)
	}
	return nil
}

func (s *contactService) sendNotification(ctx context.Context, c *domain.ContactSubmission) {
	data := &domain.ContactNotification{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
	}
	if c.Company != nil {
		data.Company = *c.Company
	}
	if c.Phone != nil {
		data.Phone = *c.Phone
	}
	subject, html, text, err := s.renderer.Render("contact_notification", data)
	if err != nil {
		s.logger.ErrorContext(ctx, "render contact notification failed", "contact_id", c.ID, "err", err)
		return
	}
	if err := s.mailer.Send(s.notifyEmail, subject, html, text); err != nil {
		s.logger.ErrorContext(ctx, "send contact notification failed", "contact_id", c.ID, "err", err)
	}
}

func (s *contactService) ListContacts(ctx context.Context, search, status string) (*domain.ContactListResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	contacts, err := s.store.Filter(ctx, func(c *domain.ContactSubmission) bool {
		if status != "" && c.Status != status {
			return false
		}
		return collection.MatchSubstring(search, c.Name, c.Email)
	})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	counts, err := s.store.Counts(ctx, func(c *domain.ContactSubmission) string { return c.Status })
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	return &domain.ContactListResult{Contacts: contacts, Counts: counts}, nil
}

func (s *contactService) UpdateContact(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.ContactSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.contactRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	s.store.Upsert(updated)
	return updated, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	s.store.Remove(id)
	return nil
}

func (s *contactService) RefreshContacts() {
	s.store.Invalidate()
}
