package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"
)

// UpdateContactRequest is the request body for PATCH /contacts/{contactID}.
// Both fields optional; omitted fields are unchanged.
type UpdateContactRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Validate implements Validator. The contact statuses are convention strings,
// so only emptiness is rejected.
func (u UpdateContactRequest) Validate() []string {
	var errs []string
	if u.Status != nil && strings.TrimSpace(*u.Status) == "" {
		errs = append(errs, "status cannot be empty")
	}
	return errs
}

// DeleteContactResponse is the data payload for DELETE /contacts/{contactID} (200).
type DeleteContactResponse struct {
	Status string `json:"status"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// ListContacts godoc
// @Summary List contact submissions
// @Description Returns submissions matching a case-insensitive substring search over name and email, optionally filtered by status, plus per-status counts over the whole collection.
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring to match against name and email (case-insensitive)"
// @Param status query string false "Filter by contact status"
// @Success 200 {object} helpers.APIResponse "data contains contacts and counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contacts [get]
func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	result, err := c.Service.ListContacts(r.Context(), search, status)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateContact godoc
// @Summary Update a contact submission
// @Description Updates the status and/or admin notes of a submission. Optional fields omitted from body are unchanged. Requires authentication.
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contactID path string true "Contact submission ID"
// @Param body body UpdateContactRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contacts/{contactID} [patch]
func (c *ContactController) UpdateContact(w http.ResponseWriter, r *http.Request) {
	contactID := r.PathValue("contactID")
	if contactID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing contactID")
		return
	}
	var req UpdateContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	contact, err := c.Service.UpdateContact(r.Context(), contactID, domain.ContactUpdate{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "contact submission not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete a contact submission
// @Description Deletes a submission. Requires authentication.
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param contactID path string true "Contact submission ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contacts/{contactID} [delete]
func (c *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactID := r.PathValue("contactID")
	if contactID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing contactID")
		return
	}
	if err := c.Service.DeleteContact(r.Context(), contactID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "contact submission not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteContactResponse{Status: "deleted"})
}
