package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	TimeSlotID  string     `json:"time_slot_id"`
	EventID     *string    `json:"event_id"`
	SessionID   *string    `json:"session_id"`
	BookingDate *time.Time `json:"booking_date"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Status      string     `json:"status"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.TimeSlotID) == "" {
		errs = append(errs, "time_slot_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "email must be a valid email address")
	}
	if c.Status != "" && !domain.ValidBookingStatus(c.Status) {
		errs = append(errs, "status must be one of: "+strings.Join(domain.BookingStatuses, ", "))
	}
	return errs
}

// UpdateBookingStatusRequest is the request body for PATCH /bookings/{bookingID}/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateBookingStatusRequest) Validate() []string {
	if !domain.ValidBookingStatus(u.Status) {
		return []string{"status must be one of: " + strings.Join(domain.BookingStatuses, ", ")}
	}
	return nil
}

// DeleteBookingResponse is the data payload for DELETE /bookings/{bookingID} (200).
type DeleteBookingResponse struct {
	Status string `json:"status"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Creates a booking against a time slot. Status defaults to "pending" when omitted. Requires authentication.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} helpers.APIResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking := &domain.Booking{
		TimeSlotID:  strings.TrimSpace(req.TimeSlotID),
		EventID:     req.EventID,
		SessionID:   req.SessionID,
		BookingDate: req.BookingDate,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:       req.Phone,
		Status:      req.Status,
	}
	if err := c.Service.CreateBooking(r.Context(), booking); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListBookings godoc
// @Summary List bookings
// @Description Returns bookings matching a case-insensitive substring search over name and email, optionally filtered by status, plus per-status counts over the whole collection.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring to match against name and email (case-insensitive)"
// @Param status query string false "Filter by booking status"
// @Success 200 {object} helpers.APIResponse "data contains bookings and counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	result, err := c.Service.ListBookings(r.Context(), search, status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateBookingStatus godoc
// @Summary Update a booking's status
// @Description Sets the booking's status. Status is the only field altered; any status may be set to any other. Requires authentication.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Param body body UpdateBookingStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID}/status [patch]
func (c *BookingController) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	if bookingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bookingID")
		return
	}
	var req UpdateBookingStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.UpdateBookingStatus(r.Context(), bookingID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "booking not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Description Deletes a booking. Requires authentication.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	if bookingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bookingID")
		return
	}
	if err := c.Service.DeleteBooking(r.Context(), bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "booking not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteBookingResponse{Status: "deleted"})
}
