package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"consultingoffice/internal/delivery/http/helpers"
	"consultingoffice/internal/domain"
)

// PutSettingRequest is the request body for PUT /settings/{key}.
type PutSettingRequest struct {
	Value string `json:"value"`
}

// Validate implements Validator. An empty value is allowed; it clears the
// setting without removing the key.
func (p PutSettingRequest) Validate() []string {
	return nil
}

type SettingController struct {
	Logger  *slog.Logger
	Service domain.SettingService
}

func NewSettingController(logger *slog.Logger, svc domain.SettingService) *SettingController {
	return &SettingController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSettings godoc
// @Summary List site settings
// @Description Returns all key/value site settings. Requires authentication.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of settings"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /settings [get]
func (c *SettingController) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.ListSettings(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, settings)
}

// PutSetting godoc
// @Summary Set a site setting
// @Description Creates or overwrites the setting with the given key. Requires authentication.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param body body PutSettingRequest true "Setting value"
// @Success 200 {object} helpers.APIResponse "data contains the stored setting"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /settings/{key} [put]
func (c *SettingController) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing key")
		return
	}
	var req PutSettingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	setting, err := c.Service.SetSetting(r.Context(), key, req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, setting)
}
