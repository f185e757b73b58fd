package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"consultingoffice/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	delegateRepo   domain.DelegateRepository
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSessionService(sessionRepo domain.SessionRepository,
	delegateRepo domain.DelegateRepository,
	eventRepo domain.EventRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		delegateRepo:   delegateRepo,
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateSession persists the session row first, then its time slots and
// delegates as separate all-or-nothing batches. The store has no multi-table
// transaction across the three inserts, so a batch failure after the session
// row exists triggers a compensating delete of that row; the schema cascades
// the delete to any children already inserted.
func (s *sessionService) CreateSession(ctx context.Context, session *domain.EventSession, slots []*domain.TimeSlot, delegates []*domain.Delegate) (*domain.EventSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if session.EventID == "" {
		return nil, fmt.Errorf("%w: session event is required", domain.ErrInvalidInput)
	}
	if session.Title == "" {
		return nil, fmt.Errorf("%w: session title is required", domain.ErrInvalidInput)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if len(slots) > 0 {
		for _, slot := range slots {
			slot.SessionID = session.ID
		}
		if err := s.sessionRepo.CreateTimeSlots(ctx, slots); err != nil {
			s.compensateSessionCreate(ctx, session.ID)
			return nil, fmt.Errorf("create time slots for session %s: %w", session.ID, err)
		}
	}

	if len(delegates) > 0 {
		for _, d := range delegates {
			d.SessionID = session.ID
		}
		if err := s.delegateRepo.CreateBatch(ctx, delegates); err != nil {
			s.compensateSessionCreate(ctx, session.ID)
			return nil, fmt.Errorf("create delegates for session %s: %w", session.ID, err)
		}
	}

	return session, nil
}

// compensateSessionCreate deletes the session row created earlier in a failed
// CreateSession call. If the delete itself fails the session row is orphaned;
// that secondary failure is logged distinctly and the caller still surfaces
// the original batch error.
func (s *sessionService) compensateSessionCreate(ctx context.Context, sessionID string) {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "compensating session delete failed, session row may be orphaned",
			"session_id", sessionID,
			"err", err,
		)
	}
}

// GetSessionWithRelations fetches the session, then its time slots and
// delegates independently. A relation fetch failure is logged and replaced
// with an empty list so the session itself stays visible.
func (s *sessionService) GetSessionWithRelations(ctx context.Context, id string) (*domain.SessionWithRelations, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	slots, err := s.sessionRepo.ListTimeSlotsBySessionID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "list time slots failed, returning session without slots", "session_id", id, "err", err)
		slots = []*domain.TimeSlot{}
	}
	if slots == nil {
		slots = []*domain.TimeSlot{}
	}

	delegates, err := s.delegateRepo.ListBySessionID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "list delegates failed, returning session without delegates", "session_id", id, "err", err)
		delegates = []*domain.Delegate{}
	}
	if delegates == nil {
		delegates = []*domain.Delegate{}
	}

	return &domain.SessionWithRelations{
		Session:   session,
		TimeSlots: slots,
		Delegates: delegates,
	}, nil
}

func (s *sessionService) ListSessionsByEvent(ctx context.Context, eventID string) ([]*domain.EventSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.EventSession{}
	}
	return sessions, nil
}

// ListActiveSessionsWithSlots returns the active sessions of an event for the
// public site, each with its time slots. Slot fetch failures degrade to empty
// lists the same way GetSessionWithRelations does.
func (s *sessionService) ListActiveSessionsWithSlots(ctx context.Context, eventID string) ([]*domain.SessionWithRelations, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	sessions, err := s.sessionRepo.ListActiveByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	out := make([]*domain.SessionWithRelations, 0, len(sessions))
	for _, session := range sessions {
		slots, err := s.sessionRepo.ListTimeSlotsBySessionID(ctx, session.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "list time slots failed, returning session without slots", "session_id", session.ID, "err", err)
			slots = []*domain.TimeSlot{}
		}
		if slots == nil {
			slots = []*domain.TimeSlot{}
		}
		out = append(out, &domain.SessionWithRelations{
			Session:   session,
			TimeSlots: slots,
			Delegates: []*domain.Delegate{},
		})
	}
	return out, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, id string, upd domain.SessionUpdate) (*domain.EventSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.sessionRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return updated, nil
}

// ToggleSessionActive reads the current flag and writes back its negation.
// The read and write are separate round trips; two concurrent togglers can
// race, which mirrors how the admin screen has always behaved.
func (s *sessionService) ToggleSessionActive(ctx context.Context, id string) (*domain.EventSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	updated, err := s.sessionRepo.SetActive(ctx, id, !session.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set session active: %w", err)
	}
	return updated, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *sessionService) AddTimeSlot(ctx context.Context, sessionID string, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	slot.SessionID = sessionID
	if err := s.sessionRepo.CreateTimeSlots(ctx, []*domain.TimeSlot{slot}); err != nil {
		return nil, fmt.Errorf("create time slot: %w", err)
	}
	return slot, nil
}

func (s *sessionService) RemoveTimeSlot(ctx context.Context, sessionID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.sessionRepo.DeleteTimeSlot(ctx, sessionID, slotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete time slot: %w", err)
	}
	return nil
}

func (s *sessionService) AddDelegate(ctx context.Context, sessionID string, delegate *domain.Delegate) (*domain.Delegate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	delegate.SessionID = sessionID
	if err := s.delegateRepo.CreateBatch(ctx, []*domain.Delegate{delegate}); err != nil {
		return nil, fmt.Errorf("create delegate: %w", err)
	}
	return delegate, nil
}

func (s *sessionService) RemoveDelegate(ctx context.Context, sessionID, delegateID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.delegateRepo.Delete(ctx, sessionID, delegateID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete delegate: %w", err)
	}
	return nil
}
