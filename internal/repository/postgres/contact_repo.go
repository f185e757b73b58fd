package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"consultingoffice/internal/domain"
)

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{
		DB: db,
	}
}

const contactColumns = `id, name, email, company, phone, message, status, notes, created_at, updated_at`

func scanContact(row interface{ Scan(dest ...any) error }) (*domain.ContactSubmission, error) {
	c := &domain.ContactSubmission{}
	var companyNull, phoneNull, notesNull sql.NullString
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &companyNull, &phoneNull,
		&c.Message, &c.Status, &notesNull, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if companyNull.Valid {
		c.Company = &companyNull.String
	}
	if phoneNull.Valid {
		c.Phone = &phoneNull.String
	}
	if notesNull.Valid {
		c.Notes = &notesNull.String
	}
	return c, nil
}

func (r *contactRepository) Create(ctx context.Context, c *domain.ContactSubmission) error {
	query := `
		INSERT INTO contact_forms (name, email, company, phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		c.Name, c.Email, c.Company, c.Phone, c.Message, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *contactRepository) List(ctx context.Context) ([]*domain.ContactSubmission, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_forms
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contacts := make([]*domain.ContactSubmission, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.ContactSubmission, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, *upd.Status)
		n++
	}
	if upd.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", n))
		args = append(args, *upd.Notes)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE contact_forms SET %s
		WHERE id = $%d
		RETURNING `+contactColumns+`
	`, strings.Join(setClauses, ", "), n)
	c, err := scanContact(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contact_forms WHERE id = $1`
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
