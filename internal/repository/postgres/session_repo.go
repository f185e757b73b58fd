package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"consultingoffice/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, event_id, title, description, location, facilitator, max_participants, is_active, created_at`

func scanSession(row interface{ Scan(dest ...any) error }) (*domain.EventSession, error) {
	s := &domain.EventSession{}
	var descNull, locNull, facNull sql.NullString
	var maxNull sql.NullInt64
	err := row.Scan(
		&s.ID, &s.EventID, &s.Title, &descNull, &locNull, &facNull,
		&maxNull, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		s.Description = &descNull.String
	}
	if locNull.Valid {
		s.Location = &locNull.String
	}
	if facNull.Valid {
		s.Facilitator = &facNull.String
	}
	if maxNull.Valid {
		v := int(maxNull.Int64)
		s.MaxParticipants = &v
	}
	return s, nil
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.EventSession) error {
	query := `
		INSERT INTO event_sessions (event_id, title, description, location, facilitator, max_participants, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		s.EventID, s.Title, s.Description, s.Location, s.Facilitator, s.MaxParticipants, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.EventSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM event_sessions
		WHERE id = $1
	`
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM event_sessions
		WHERE event_id = $1
		ORDER BY created_at
	`
	return r.list(ctx, query, eventID)
}

func (r *sessionRepository) ListActiveByEventID(ctx context.Context, eventID string) ([]*domain.EventSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM event_sessions
		WHERE event_id = $1 AND is_active = TRUE
		ORDER BY created_at
	`
	return r.list(ctx, query, eventID)
}

func (r *sessionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.EventSession, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.EventSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Update(ctx context.Context, id string, upd domain.SessionUpdate) (*domain.EventSession, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Facilitator != nil {
		add("facilitator", *upd.Facilitator)
	}
	if upd.MaxParticipants != nil {
		add("max_participants", *upd.MaxParticipants)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE event_sessions SET %s
		WHERE id = $%d
		RETURNING `+sessionColumns+`
	`, strings.Join(setClauses, ", "), n)
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) SetActive(ctx context.Context, id string, active bool) (*domain.EventSession, error) {
	query := `
		UPDATE event_sessions
		SET is_active = $2
		WHERE id = $1
		RETURNING ` + sessionColumns + `
	`
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM event_sessions WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateTimeSlots inserts all slots in a single statement so the batch is
// all-or-nothing. Slot IDs are filled in from the returned rows, which come
// back in insertion order.
func (r *sessionRepository) CreateTimeSlots(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	valueClauses := make([]string, 0, len(slots))
	args := make([]interface{}, 0, len(slots)*3)
	for i, slot := range slots {
		valueClauses = append(valueClauses, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		args = append(args, slot.SessionID, slot.StartTime, slot.EndTime)
	}
	query := fmt.Sprintf(`
		INSERT INTO time_slots (session_id, start_time, end_time)
		VALUES %s
		RETURNING id
	`, strings.Join(valueClauses, ", "))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	i := 0
	for rows.Next() {
		if i >= len(slots) {
			break
		}
		if err := rows.Scan(&slots[i].ID); err != nil {
			return err
		}
		i++
	}
	return rows.Err()
}

func (r *sessionRepository) ListTimeSlotsBySessionID(ctx context.Context, sessionID string) ([]*domain.TimeSlot, error) {
	query := `
		SELECT id, session_id, start_time, end_time
		FROM time_slots
		WHERE session_id = $1
		ORDER BY start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot := &domain.TimeSlot{}
		if err := rows.Scan(&slot.ID, &slot.SessionID, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *sessionRepository) DeleteTimeSlot(ctx context.Context, sessionID, slotID string) error {
	query := `DELETE FROM time_slots WHERE id = $1 AND session_id = $2`
	result, err := r.DB.ExecContext(ctx, query, slotID, sessionID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
