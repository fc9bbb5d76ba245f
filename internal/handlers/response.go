package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"denizsel-backend/internal/middleware"
	"denizsel-backend/internal/models"
	"denizsel-backend/internal/services"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		RequestID: r.Header.Get(middleware.RequestIDHeader),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleServiceError maps service errors to HTTP responses. Upstream causes
// are logged and never returned to the caller.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *services.ValidationError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResp(validationErr.Message, r))
	case errors.As(err, &upstreamErr):
		log.Printf("✗ [%s] %s %s: %v", r.Header.Get(middleware.RequestIDHeader), r.Method, r.URL.Path, upstreamErr)
		writeJSON(w, http.StatusInternalServerError, errorResp(upstreamErr.Message, r))
	default:
		log.Printf("✗ [%s] %s %s: unexpected error: %v", r.Header.Get(middleware.RequestIDHeader), r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback, r))
	}
}
