package postgres

import (
	"context"
	"database/sql"

	"consultingoffice/internal/domain"
)

type settingRepository struct {
	DB *sql.DB
}

func NewSettingRepository(db *sql.DB) domain.SettingRepository {
	return &settingRepository{
		DB: db,
	}
}

func (r *settingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	query := `
		SELECT key, value, updated_at
		FROM settings
		ORDER BY key
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	settings := make([]*domain.Setting, 0)
	for rows.Next() {
		s := &domain.Setting{}
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING key, value, updated_at
	`
	s := &domain.Setting{}
	if err := r.DB.QueryRowContext(ctx, query, key, value).Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}
