package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultingoffice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, 5*time.Second)

	event := &domain.Event{Title: "Leadership Summit"}
	require.NoError(t, svc.CreateEvent(ctx, event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	err := svc.CreateEvent(ctx, &domain.Event{})
	require.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEventService_ListActiveEvents(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	repo.byID["ev-1"] = &domain.Event{ID: "ev-1", Title: "Active", IsActive: true}
	repo.byID["ev-2"] = &domain.Event{ID: "ev-2", Title: "Hidden", IsActive: false}
	svc := NewEventService(repo, 5*time.Second)

	events, err := svc.ListActiveEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Active", events[0].Title)
}

func TestEventService_ListEvents_Empty(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(), 5*time.Second)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	repo.byID["ev-1"] = &domain.Event{ID: "ev-1", Title: "Old", IsActive: true}
	svc := NewEventService(repo, 5*time.Second)

	title := "New"
	inactive := false
	updated, err := svc.UpdateEvent(ctx, "ev-1", domain.EventUpdate{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateEvent(ctx, "ev-missing", domain.EventUpdate{Title: &title})
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	repo.byID["ev-1"] = &domain.Event{ID: "ev-1", Title: "Summit"}
	svc := NewEventService(repo, 5*time.Second)

	require.NoError(t, svc.DeleteEvent(ctx, "ev-1"))
	err := svc.DeleteEvent(ctx, "ev-1")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
