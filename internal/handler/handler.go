package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shoplite/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error to an HTTP response. Not-found and
// validation errors keep their codes; everything else collapses to a generic
// internal error with no detail leakage.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeProductNotFound, model.ErrCodeVariantNotFound:
			writeError(w, http.StatusNotFound, domainErr.Code, domainErr.Message, logger)
			return
		case model.ErrCodeValidationFailed, model.ErrCodeInvalidJSON:
			writeError(w, http.StatusBadRequest, domainErr.Code, domainErr.Message, logger)
			return
		}
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// parsePathID extracts a positive integer path parameter.
func parsePathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, model.NewValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

// decodeJSON decodes a request body into dst, rejecting malformed payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid JSON payload")
	}
	return nil
}
