package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"consultingoffice/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func contactRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"id", "name", "email", "company", "phone", "message", "status", "notes", "created_at", "updated_at"})
}

func TestContactRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := &domain.ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Interested in coaching",
		Status:  domain.ContactStatusNew,
	}
	mock.ExpectQuery(`INSERT INTO contact_forms \(name, email, company, phone, message, status\)`).
		WithArgs("Ada", "ada@example.com", nil, nil, "Interested in coaching", "new").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("ct-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	repo := NewContactRepository(db)
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, "ct-1", c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("status and notes", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		status := "in-progress"
		notes := "Called back"
		mock.ExpectQuery(`UPDATE contact_forms SET updated_at = NOW\(\), status = \$1, notes = \$2`).
			WithArgs("in-progress", "Called back", "ct-1").
			WillReturnRows(contactRows(t).
				AddRow("ct-1", "Ada", "ada@example.com", nil, nil, "Hello", "in-progress", "Called back", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))

		repo := NewContactRepository(db)
		got, err := repo.Update(ctx, "ct-1", domain.ContactUpdate{Status: &status, Notes: &notes})
		require.NoError(t, err)
		require.Equal(t, "in-progress", got.Status)
		require.NotNil(t, got.Notes)
		require.Equal(t, "Called back", *got.Notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		status := "closed"
		mock.ExpectQuery(`UPDATE contact_forms SET updated_at = NOW\(\), status = \$1`).
			WithArgs("closed", "ct-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewContactRepository(db)
		got, err := repo.Update(ctx, "ct-missing", domain.ContactUpdate{Status: &status})
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_List(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := contactRows(t).
		AddRow("ct-1", "Ada", "ada@example.com", "Lovelace Ltd", nil, "Hello", "new", nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		AddRow("ct-2", "Grace", "grace@example.com", nil, "555-1234", "Hi", "closed", "Done", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT id, name, email, company, phone, message, status, notes, created_at, updated_at`).
		WillReturnRows(rows)

	repo := NewContactRepository(db)
	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Company)
	require.Nil(t, got[0].Phone)
	require.NotNil(t, got[1].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}
