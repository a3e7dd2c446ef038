package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondData(w http.ResponseWriter, code int, data interface{}) {
	respondJSON(w, code, Envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, Envelope{Success: false, Error: message})
}

// respondInternal logs the cause and returns a sanitized 500. Development
// mode exposes the underlying error to ease debugging.
func (h *Handler) respondInternal(w http.ResponseWriter, r *http.Request, err error, public string) {
	slog.Error(public, "method", r.Method, "path", r.URL.Path, "error", err)
	if h.cfg.IsDevelopment() {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", public, err))
		return
	}
	respondError(w, http.StatusInternalServerError, public)
}

// decodeJSON reads a JSON body into dst, mapping malformed bodies to a
// client error. The body size ceiling is applied by router middleware.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return err
		}
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return err
	}
	return nil
}

// respondValidation turns missing/invalid field lists into a 400 whose
// message names the offending fields.
func respondValidation(w http.ResponseWriter, missing, invalid []string) {
	if len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	respondError(w, http.StatusBadRequest, "Invalid value for fields: "+strings.Join(invalid, ", "))
}

// parseDate accepts the client date formats deals carry: RFC3339 or a bare
// calendar date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
