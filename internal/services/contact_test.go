package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"consultingoffice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	byID   map[string]*domain.ContactSubmission
	nextID int

	createErr error
	updateErr error
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: make(map[string]*domain.ContactSubmission)}
}

func (f *fakeContactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.ID = fmt.Sprintf("ct-%d", f.nextID)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContactRepo) List(ctx context.Context) ([]*domain.ContactSubmission, error) {
	var out []*domain.ContactSubmission
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.ContactSubmission, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.Notes != nil {
		c.Notes = upd.Notes
	}
	c.UpdatedAt = time.Now()
	copied := *c
	return &copied, nil
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeMailer struct {
	sendErr error

	sentTo      []string
	sentSubject string
	sentHTML    string
	sentText    string
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.sentTo = append(f.sentTo, to)
	f.sentSubject = subject
	f.sentHTML = html
	f.sentText = text
	return f.sendErr
}

type fakeRenderer struct {
	renderErr error

	renderedName string
	renderedData interface{}
}

func (f *fakeRenderer) Render(name string, data interface{}) (string, string, string, error) {
	f.renderedName = name
	f.renderedData = data
	if f.renderErr != nil {
		return "", "", "", f.renderErr
	}
	return "New contact", "<p>hi</p>", "hi", nil
}

func newContactServiceForTest(repo *fakeContactRepo, mailer *fakeMailer, renderer *fakeRenderer, notifyEmail string) domain.ContactService {
	return NewContactService(repo, mailer, renderer, notifyEmail, testLogger(), 5*time.Second)
}

func TestContactService_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("stores submission and notifies", func(t *testing.T) {
		repo := newFakeContactRepo()
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := newContactServiceForTest(repo, mailer, renderer, "owner@example.com")

		c := &domain.ContactSubmission{
			Name:    "  Ada Lovelace ",
			Email:   "Ada@Example.com",
			Message: " Please call me back. ",
		}
		require.NoError(t, svc.SubmitContact(ctx, c))
		assert.Equal(t, "Ada Lovelace", c.Name)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.Equal(t, domain.ContactStatusNew, c.Status)
		assert.NotEmpty(t, c.ID)

		assert.Equal(t, "contact_notification", renderer.renderedName)
		require.Len(t, mailer.sentTo, 1)
		assert.Equal(t, "owner@example.com", mailer.sentTo[0])

		data, ok := renderer.renderedData.(*domain.ContactNotification)
		require.True(t, ok)
		assert.Equal(t, "Ada Lovelace", data.Name)
	})

	t.Run("no notify address configured skips email", func(t *testing.T) {
		repo := newFakeContactRepo()
		mailer := &fakeMailer{}
		svc := newContactServiceForTest(repo, mailer, &fakeRenderer{}, "")

		c := &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
		require.NoError(t, svc.SubmitContact(ctx, c))
		assert.Empty(t, mailer.sentTo)
	})

	t.Run("send failure is not surfaced", func(t *testing.T) {
		repo := newFakeContactRepo()
		mailer := &fakeMailer{sendErr: errors.New("ses unavailable")}
		svc := newContactServiceForTest(repo, mailer, &fakeRenderer{}, "owner@example.com")

		c := &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
		require.NoError(t, svc.SubmitContact(ctx, c))
		assert.NotEmpty(t, c.ID)
	})

	t.Run("render failure is not surfaced and skips send", func(t *testing.T) {
		repo := newFakeContactRepo()
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{renderErr: errors.New("bad template")}
		svc := newContactServiceForTest(repo, mailer, renderer, "owner@example.com")

		c := &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
		require.NoError(t, svc.SubmitContact(ctx, c))
		assert.Empty(t, mailer.sentTo)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newContactServiceForTest(newFakeContactRepo(), &fakeMailer{}, &fakeRenderer{}, "")

		err := svc.SubmitContact(ctx, &domain.ContactSubmission{Email: "ada@example.com", Message: "hi"})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))

		err = svc.SubmitContact(ctx, &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "   "})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("create failure skips notification", func(t *testing.T) {
		repo := newFakeContactRepo()
		repo.createErr = errors.New("db down")
		mailer := &fakeMailer{}
		svc := newContactServiceForTest(repo, mailer, &fakeRenderer{}, "owner@example.com")

		err := svc.SubmitContact(ctx, &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"})
		require.Error(t, err)
		assert.Empty(t, mailer.sentTo)
	})
}

func TestContactService_ListContacts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContactRepo()
	svc := newContactServiceForTest(repo, &fakeMailer{}, &fakeRenderer{}, "")

	for _, c := range []*domain.ContactSubmission{
		{Name: "Ada Lovelace", Email: "ada@example.com", Message: "hi"},
		{Name: "Grace Hopper", Email: "grace@example.com", Message: "hello"},
	} {
		require.NoError(t, svc.SubmitContact(ctx, c))
	}
	inProgress := domain.ContactStatusInProgress
	_, err := svc.UpdateContact(ctx, "ct-2", domain.ContactUpdate{Status: &inProgress})
	require.NoError(t, err)

	res, err := svc.ListContacts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, res.Contacts, 2)
	assert.Equal(t, 1, res.Counts[domain.ContactStatusNew])
	assert.Equal(t, 1, res.Counts[domain.ContactStatusInProgress])

	res, err = svc.ListContacts(ctx, "lovelace", "")
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "Ada Lovelace", res.Contacts[0].Name)

	res, err = svc.ListContacts(ctx, "", domain.ContactStatusInProgress)
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "Grace Hopper", res.Contacts[0].Name)
}

func TestContactService_UpdateContact(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContactRepo()
	svc := newContactServiceForTest(repo, &fakeMailer{}, &fakeRenderer{}, "")

	c := &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	require.NoError(t, svc.SubmitContact(ctx, c))

	notes := "Called back on Tuesday"
	completed := domain.ContactStatusCompleted
	updated, err := svc.UpdateContact(ctx, c.ID, domain.ContactUpdate{Status: &completed, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusCompleted, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	_, err = svc.UpdateContact(ctx, "ct-missing", domain.ContactUpdate{Status: &completed})
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestContactService_DeleteContact(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContactRepo()
	svc := newContactServiceForTest(repo, &fakeMailer{}, &fakeRenderer{}, "")

	c := &domain.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	require.NoError(t, svc.SubmitContact(ctx, c))

	require.NoError(t, svc.DeleteContact(ctx, c.ID))
	res, err := svc.ListContacts(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, res.Contacts)

	err = svc.DeleteContact(ctx, c.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
