package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"
)

// SubmitContactRequest is the request body for POST /public/contact.
type SubmitContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
}

// Validate implements Validator.
func (s SubmitContactRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(s.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "email must be a valid email address")
	}
	if strings.TrimSpace(s.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// SubmitContactResponse is the data payload for POST /public/contact (201).
type SubmitContactResponse struct {
	Status string `json:"status"`
}

// PublicController serves the marketing site: active events, active sessions
// with their time slots, and the contact form. No authentication.
type PublicController struct {
	Logger         *slog.Logger
	EventService   domain.EventService
	SessionService domain.SessionService
	ContactService domain.ContactService
}

func NewPublicController(logger *slog.Logger,
	eventSvc domain.EventService,
	sessionSvc domain.SessionService,
	contactSvc domain.ContactService,
) *PublicController {
	return &PublicController{
		Logger:         logger,
		EventService:   eventSvc,
		SessionService: sessionSvc,
		ContactService: contactSvc,
	}
}

// ListActiveEvents godoc
// @Summary List active events
// @Description Returns the active events ordered by display_order, for the public site.
// @Tags public
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events [get]
func (c *PublicController) ListActiveEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.EventService.ListActiveEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListActiveSessions godoc
// @Summary List active sessions of an event
// @Description Returns the event's active sessions, each with its time slots, for the public site.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is an array of sessions with time slots"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{eventID}/sessions [get]
func (c *PublicController) ListActiveSessions(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	sessions, err := c.SessionService.ListActiveSessionsWithSlots(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Description Stores a contact form submission with status "new" and notifies the site owner by email. A notification failure does not fail the submission.
// @Tags public
// @Accept json
// @Produce json
// @Param body body SubmitContactRequest true "Contact form data"
// @Success 201 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/contact [post]
func (c *PublicController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	submission := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := c.ContactService.SubmitContact(r.Context(), submission); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, SubmitContactResponse{Status: "received"})
}
