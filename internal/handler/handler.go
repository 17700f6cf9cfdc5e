package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gec-catalog/internal/model"

	"github.com/rs/zerolog"
)

// statusResponse is the success envelope most endpoints answer with.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// failureResponse is the failure envelope. Error carries the underlying
// cause for server-side failures and is omitted for validation failures.
type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already flushed; nothing sensible left to do.
		return
	}
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: message})
}

// writeFailure writes a failure envelope with the given status code.
func writeFailure(w http.ResponseWriter, status int, message, cause string, logger zerolog.Logger) {
	logger.Warn().Str("message", message).Str("cause", cause).Int("status", status).Msg("request failed")
	writeJSON(w, status, failureResponse{Success: false, Message: message, Error: cause})
}

// writeServiceError maps a service error onto the wire contract: validation
// failures are client errors with no cause leaked, missing entities are 404,
// everything else is a server error carrying the underlying reason.
func writeServiceError(w http.ResponseWriter, err error, serverMessage string, logger zerolog.Logger) {
	var ve *model.ValidationError
	var nf *model.NotFoundError

	switch {
	case errors.As(err, &ve):
		writeFailure(w, http.StatusBadRequest, ve.Reason, "", logger)
	case errors.As(err, &nf):
		writeFailure(w, http.StatusNotFound, nf.Error(), "", logger)
	default:
		writeFailure(w, http.StatusInternalServerError, serverMessage, err.Error(), logger)
	}
}
