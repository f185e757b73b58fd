package postgres

import (
	"context"
	"database/sql"
	"errors"

	"consultingoffice/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

const bookingColumns = `id, time_slot_id, event_id, session_id, booking_date, name, email, phone, status, created_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var eventNull, sessionNull, phoneNull sql.NullString
	var dateNull sql.NullTime
	err := row.Scan(
		&b.ID, &b.TimeSlotID, &eventNull, &sessionNull, &dateNull,
		&b.Name, &b.Email, &phoneNull, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if eventNull.Valid {
		b.EventID = &eventNull.String
	}
	if sessionNull.Valid {
		b.SessionID = &sessionNull.String
	}
	if dateNull.Valid {
		b.BookingDate = &dateNull.Time
	}
	if phoneNull.Valid {
		b.Phone = &phoneNull.String
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (time_slot_id, event_id, session_id, booking_date, name, email, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		b.TimeSlotID, b.EventID, b.SessionID, b.BookingDate, b.Name, b.Email, b.Phone, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING ` + bookingColumns + `
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bookings WHERE id = $1`
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
