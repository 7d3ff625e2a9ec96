package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"fjacquet/misi/internal/ledgererror"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps ledger errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ledgererror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ledgererror.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {"error": "..."} with the mapped status.
// Internal errors are not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if StatusFor(err) == http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request handler failed")
	}
	WriteError(w, err)
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ledgererror.Invalid("request body", err.Error())
	}
	return nil
}
