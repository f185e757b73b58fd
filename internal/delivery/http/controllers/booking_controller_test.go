package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingService struct {
	created *domain.Booking
	list    *domain.BookingListResult
	updated *domain.Booking

	createErr error
	listErr   error
	updateErr error
	deleteErr error

	gotSearch string
	gotStatus string
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	booking.ID = "bk-1"
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	f.created = booking
	return nil
}

func (f *fakeBookingService) ListBookings(ctx context.Context, search, status string) (*domain.BookingListResult, error) {
	f.gotSearch = search
	f.gotStatus = status
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeBookingService) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeBookingService) DeleteBooking(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeBookingService) RefreshBookings() {}

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodyCode   string
		wantBodySubstr string
		check          func(t *testing.T, f *fakeBookingService)
	}{
		{
			name:       "success with default status",
			body:       `{"time_slot_id":"ts-1","name":"Ada Lovelace","email":"Ada@Example.COM"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, f *fakeBookingService) {
				require.NotNil(t, f.created)
				assert.Equal(t, domain.BookingStatusPending, f.created.Status)
				assert.Equal(t, "ada@example.com", f.created.Email)
			},
		},
		{
			name:         "missing time slot",
			body:         `{"name":"Ada","email":"ada@example.com"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:           "unknown status rejected",
			body:           `{"time_slot_id":"ts-1","name":"Ada","email":"ada@example.com","status":"approved"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "status must be one of",
		},
		{
			name:         "bad email",
			body:         `{"time_slot_id":"ts-1","name":"Ada","email":"nope"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service failure",
			body:         `{"time_slot_id":"ts-1","name":"Ada","email":"ada@example.com"}`,
			fakeErr:      errors.New("db down"),
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{createErr: tt.fakeErr}
			ctrl := NewBookingController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/bookings", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				if tt.check != nil {
					tt.check(t, fake)
				}
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestBookingController_ListBookings(t *testing.T) {
	fake := &fakeBookingService{
		list: &domain.BookingListResult{
			Bookings: []*domain.Booking{{ID: "bk-1", Name: "Ada Lovelace", Status: domain.BookingStatusPending}},
			Counts:   map[string]int{domain.BookingStatusPending: 1},
		},
	}
	ctrl := NewBookingController(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "http://test/bookings?search=ada&status=pending", nil)
	rr := httptest.NewRecorder()

	ctrl.ListBookings(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ada", fake.gotSearch)
	assert.Equal(t, "pending", fake.gotStatus)

	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	dataBytes, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var got domain.BookingListResult
	require.NoError(t, json.Unmarshal(dataBytes, &got))
	require.Len(t, got.Bookings, 1)
	assert.Equal(t, 1, got.Counts[domain.BookingStatusPending])
}

func TestBookingController_UpdateBookingStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeBookingService{updated: &domain.Booking{ID: "bk-1", Status: domain.BookingStatusConfirmed}}
		ctrl := NewBookingController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodPatch, "http://test/bookings/bk-1/status", bytes.NewBufferString(`{"status":"confirmed"}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("bookingID", "bk-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateBookingStatus(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := NewBookingController(testLogger(), &fakeBookingService{})

		req := httptest.NewRequest(http.MethodPatch, "http://test/bookings/bk-1/status", bytes.NewBufferString(`{"status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("bookingID", "bk-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateBookingStatus(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewBookingController(testLogger(), &fakeBookingService{updateErr: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodPatch, "http://test/bookings/bk-x/status", bytes.NewBufferString(`{"status":"cancelled"}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("bookingID", "bk-x")
		rr := httptest.NewRecorder()

		ctrl.UpdateBookingStatus(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestBookingController_DeleteBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewBookingController(testLogger(), &fakeBookingService{})

		req := httptest.NewRequest(http.MethodDelete, "http://test/bookings/bk-1", nil)
		req.SetPathValue("bookingID", "bk-1")
		rr := httptest.NewRecorder()

		ctrl.DeleteBooking(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewBookingController(testLogger(), &fakeBookingService{deleteErr: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodDelete, "http://test/bookings/bk-x", nil)
		req.SetPathValue("bookingID", "bk-x")
		rr := httptest.NewRecorder()

		ctrl.DeleteBooking(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
