package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"
)

// TimeSlotRequest is a single time slot in session payloads.
type TimeSlotRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (t TimeSlotRequest) validate(prefix string) []string {
	var errs []string
	if t.StartTime.IsZero() {
		errs = append(errs, prefix+"start_time is required")
	}
	if t.EndTime.IsZero() {
		errs = append(errs, prefix+"end_time is required")
	}
	if !t.StartTime.IsZero() && !t.EndTime.IsZero() && !t.EndTime.After(t.StartTime) {
		errs = append(errs, prefix+"end_time must be after start_time")
	}
	return errs
}

// DelegateRequest is a single delegate in session payloads.
type DelegateRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Organization *string `json:"organization"`
	Position     *string `json:"position"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
}

func (d DelegateRequest) validate(prefix string) []string {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, prefix+"name is required")
	}
	email := strings.TrimSpace(d.Email)
	if email == "" {
		errs = append(errs, prefix+"email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, prefix+"email must be a valid email address")
	}
	return errs
}

func (d DelegateRequest) toDomain() *domain.Delegate {
	return &domain.Delegate{
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(strings.ToLower(d.Email)),
		Phone:        d.Phone,
		Organization: d.Organization,
		Position:     d.Position,
		Bio:          d.Bio,
		PhotoURL:     d.PhotoURL,
	}
}

// CreateSessionRequest is the request body for POST /sessions. The wizard
// submits the session together with its time slots and delegates in one call.
type CreateSessionRequest struct {
	EventID         string            `json:"event_id"`
	Title           string            `json:"title"`
	Description     *string           `json:"description"`
	Location        *string           `json:"location"`
	Facilitator     *string           `json:"facilitator"`
	MaxParticipants *int              `json:"max_participants"`
	IsActive        *bool             `json:"is_active"`
	TimeSlots       []TimeSlotRequest `json:"time_slots"`
	Delegates       []DelegateRequest `json:"delegates"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.MaxParticipants != nil && *c.MaxParticipants < 0 {
		errs = append(errs, "max_participants must be non-negative")
	}
	for i, slot := range c.TimeSlots {
		errs = append(errs, slot.validate(fmt.Sprintf("time_slots[%d]: ", i))...)
	}
	for i, d := range c.Delegates {
		errs = append(errs, d.validate(fmt.Sprintf("delegates[%d]: ", i))...)
	}
	return errs
}

// UpdateSessionRequest is the request body for PATCH /sessions/{sessionID}.
// All fields optional; omitted fields are unchanged.
type UpdateSessionRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Location        *string `json:"location"`
	Facilitator     *string `json:"facilitator"`
	MaxParticipants *int    `json:"max_participants"`
	IsActive        *bool   `json:"is_active"`
}

// Validate implements Validator.
func (u UpdateSessionRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.MaxParticipants != nil && *u.MaxParticipants < 0 {
		errs = append(errs, "max_participants must be non-negative")
	}
	return errs
}

// AddTimeSlotRequest is the request body for POST /sessions/{sessionID}/slots.
type AddTimeSlotRequest struct {
	TimeSlotRequest
}

// Validate implements Validator.
func (a AddTimeSlotRequest) Validate() []string {
	return a.validate("")
}

// AddDelegateRequest is the request body for POST /sessions/{sessionID}/delegates.
type AddDelegateRequest struct {
	DelegateRequest
}

// Validate implements Validator.
func (a AddDelegateRequest) Validate() []string {
	return a.validate("")
}

// DeleteSessionResponse is the data payload for session and sub-resource deletes (200).
type DeleteSessionResponse struct {
	Status string `json:"status"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session with its time slots and delegates
// @Description Creates a session under an event together with its time slots and delegates as one logical unit. If a slot or delegate batch fails, the session row is removed again and the error names the failing batch. Requires authentication.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSessionRequest true "Session with time slots and delegates"
// @Success 201 {object} helpers.APIResponse "data contains the created session with relations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	session := domain.NewEventSession(strings.TrimSpace(req.EventID), strings.TrimSpace(req.Title))
	session.Description = req.Description
	session.Location = req.Location
	session.Facilitator = req.Facilitator
	session.MaxParticipants = req.MaxParticipants
	if req.IsActive != nil {
		session.IsActive = *req.IsActive
	}

	slots := make([]*domain.TimeSlot, 0, len(req.TimeSlots))
	for _, s := range req.TimeSlots {
		slots = append(slots, &domain.TimeSlot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	delegates := make([]*domain.Delegate, 0, len(req.Delegates))
	for _, d := range req.Delegates {
		delegates = append(delegates, d.toDomain())
	}

	created, err := c.Service.CreateSession(r.Context(), session, slots, delegates)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.SessionWithRelations{
		Session:   created,
		TimeSlots: slots,
		Delegates: delegates,
	})
}

// ListSessions godoc
// @Summary List sessions for an event
// @Description Returns all sessions of the event given by the event_id query parameter. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param event_id query string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [get]
func (c *SessionController) ListSessions(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event_id")
		return
	}
	sessions, err := c.Service.ListSessionsByEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get a session with its time slots and delegates
// @Description Returns the session, its time slots ordered by start time, and its delegates. A failed relation fetch degrades to an empty list. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains session, time_slots, and delegates"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [get]
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	result, err := c.Service.GetSessionWithRelations(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateSession godoc
// @Summary Update a session
// @Description Partially updates a session. Optional fields omitted from body are unchanged. Requires authentication.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param body body UpdateSessionRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [patch]
func (c *SessionController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	var req UpdateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.UpdateSession(r.Context(), sessionID, domain.SessionUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Facilitator:     req.Facilitator,
		MaxParticipants: req.MaxParticipants,
		IsActive:        req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// ToggleSession godoc
// @Summary Toggle a session's active flag
// @Description Reads the current active flag and writes back its negation, returning the updated session. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated session"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/toggle [post]
func (c *SessionController) ToggleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	session, err := c.Service.ToggleSessionActive(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Deletes a session; the schema cascades to its time slots and delegates. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [delete]
func (c *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	if err := c.Service.DeleteSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSessionResponse{Status: "deleted"})
}

// AddTimeSlot godoc
// @Summary Add a time slot to a session
// @Description Adds a single time slot to an existing session. Requires authentication.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param body body AddTimeSlotRequest true "Time slot"
// @Success 201 {object} helpers.APIResponse "data contains the created time slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/slots [post]
func (c *SessionController) AddTimeSlot(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	var req AddTimeSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	slot, err := c.Service.AddTimeSlot(r.Context(), sessionID, &domain.TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// RemoveTimeSlot godoc
// @Summary Remove a time slot from a session
// @Description Deletes a single time slot. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param slotID path string true "Time slot ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/slots/{slotID} [delete]
func (c *SessionController) RemoveTimeSlot(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	slotID := r.PathValue("slotID")
	if sessionID == "" || slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID or slotID")
		return
	}
	if err := c.Service.RemoveTimeSlot(r.Context(), sessionID, slotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "time slot not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSessionResponse{Status: "deleted"})
}

// AddDelegate godoc
// @Summary Add a delegate to a session
// @Description Adds a single delegate to an existing session. Requires authentication.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param body body AddDelegateRequest true "Delegate"
// @Success 201 {object} helpers.APIResponse "data contains the created delegate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/delegates [post]
func (c *SessionController) AddDelegate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	var req AddDelegateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	delegate, err := c.Service.AddDelegate(r.Context(), sessionID, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, delegate)
}

// RemoveDelegate godoc
// @Summary Remove a delegate from a session
// @Description Deletes a single delegate. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Param delegateID path string true "Delegate ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/delegates/{delegateID} [delete]
func (c *SessionController) RemoveDelegate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	delegateID := r.PathValue("delegateID")
	if sessionID == "" || delegateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID or delegateID")
		return
	}
	if err := c.Service.RemoveDelegate(r.Context(), sessionID, delegateID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "delegate not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSessionResponse{Status: "deleted"})
}
