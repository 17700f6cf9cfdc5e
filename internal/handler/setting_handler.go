package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"gec-catalog/internal/service"

	"github.com/rs/zerolog"
)

// SettingHandler handles site-setting HTTP requests.
type SettingHandler struct {
	service service.SettingService
	logger  zerolog.Logger
}

// NewSettingHandler creates a new setting handler.
func NewSettingHandler(service service.SettingService, logger zerolog.Logger) *SettingHandler {
	return &SettingHandler{
		service: service,
		logger:  logger.With().Str("handler", "setting").Logger(),
	}
}

// GetScrollingMessage handles GET /api/site-settings/scrolling-message.
func (h *SettingHandler) GetScrollingMessage(w http.ResponseWriter, r *http.Request) {
	message, err := h.service.ScrollingMessage(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error fetching scrolling message", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: message})
}

// UpdateScrollingMessage handles PUT /api/site-settings/scrolling-message.
func (h *SettingHandler) UpdateScrollingMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	if err := h.service.UpdateScrollingMessage(r.Context(), body.Message); err != nil {
		writeServiceError(w, err, "Error updating scrolling message", h.logger)
		return
	}

	writeSuccess(w, "Scrolling message updated successfully")
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Service   string `json:"service"`
	}{"OK", time.Now().UTC().Format(time.RFC3339), "Website API"})
}
