package handler

import (
	"encoding/json"
	"net/http"

	"gec-catalog/internal/model"
	"gec-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FolderHandler handles folder-related HTTP requests.
type FolderHandler struct {
	service service.FolderService
	logger  zerolog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(service service.FolderService, logger zerolog.Logger) *FolderHandler {
	return &FolderHandler{
		service: service,
		logger:  logger.With().Str("handler", "folder").Logger(),
	}
}

// List handles GET /api/folders.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error retrieving folders", h.logger)
		return
	}

	if folders == nil {
		folders = []model.Folder{}
	}

	writeJSON(w, http.StatusOK, folders)
}

// Create handles POST /api/folders.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	if _, err := h.service.Create(r.Context(), &req); err != nil {
		writeServiceError(w, err, "Error creating folder", h.logger)
		return
	}

	writeSuccess(w, "Folder created successfully")
}

// Rename handles PUT /api/folders/{id}.
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid folder id", "", h.logger)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	if err := h.service.Rename(r.Context(), id, body.Name); err != nil {
		writeServiceError(w, err, "Error updating folder", h.logger)
		return
	}

	writeSuccess(w, "Folder updated successfully")
}

// Delete handles DELETE /api/folders/{id}.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid folder id", "", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Error deleting folder", h.logger)
		return
	}

	writeSuccess(w, "Folder deleted successfully")
}
