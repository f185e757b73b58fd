package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"consultingoffice/internal/domain"
)

type delegateRepository struct {
	DB *sql.DB
}

func NewDelegateRepository(db *sql.DB) domain.DelegateRepository {
	return &delegateRepository{
		DB: db,
	}
}

// CreateBatch inserts all delegates in a single statement so the batch is
// all-or-nothing. IDs and creation timestamps are filled in from the returned
// rows, which come back in insertion order.
func (r *delegateRepository) CreateBatch(ctx context.Context, delegates []*domain.Delegate) error {
	if len(delegates) == 0 {
		return nil
	}
	valueClauses := make([]string, 0, len(delegates))
	args := make([]interface{}, 0, len(delegates)*8)
	for i, d := range delegates {
		base := i * 8
		valueClauses = append(valueClauses, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, d.SessionID, d.Name, d.Email, d.Phone, d.Organization, d.Position, d.Bio, d.PhotoURL)
	}
	query := fmt.Sprintf(`
		INSERT INTO delegates (session_id, name, email, phone, organization, position, bio, photo_url)
		VALUES %s
		RETURNING id, created_at
	`, strings.Join(valueClauses, ", "))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	i := 0
	for rows.Next() {
		if i >= len(delegates) {
			break
		}
		if err := rows.Scan(&delegates[i].ID, &delegates[i].CreatedAt); err != nil {
			return err
		}
		i++
	}
	return rows.Err()
}

func (r *delegateRepository) ListBySessionID(ctx context.Context, sessionID string) ([]*domain.Delegate, error) {
	query := `
		SELECT id, session_id, name, email, phone, organization, position, bio, photo_url, created_at
		FROM delegates
		WHERE session_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	delegates := make([]*domain.Delegate, 0)
	for rows.Next() {
		d := &domain.Delegate{}
		var phoneNull, orgNull, posNull, bioNull, photoNull sql.NullString
		if err := rows.Scan(&d.ID, &d.SessionID, &d.Name, &d.Email, &phoneNull, &orgNull, &posNull, &bioNull, &photoNull, &d.CreatedAt); err != nil {
			return nil, err
		}
		if phoneNull.Valid {
			d.Phone = &phoneNull.String
		}
		if orgNull.Valid {
			d.Organization = &orgNull.String
		}
		if posNull.Valid {
			d.Position = &posNull.String
		}
		if bioNull.Valid {
			d.Bio = &bioNull.String
		}
		if photoNull.Valid {
			d.PhotoURL = &photoNull.String
		}
		delegates = append(delegates, d)
	}
	return delegates, rows.Err()
}

func (r *delegateRepository) Delete(ctx context.Context, sessionID, delegateID string) error {
	query := `DELETE FROM delegates WHERE id = $1 AND session_id = $2`
	result, err := r.DB.ExecContext(ctx, query, delegateID, sessionID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
