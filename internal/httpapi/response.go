package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/observability"
	"github.com/leofalp/mocktools/providers/tool"
)

// Envelope wraps every response body.
type Envelope struct {
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	Success bool              `json:"success"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{Success: status < 400, Data: data}
	if err := json.NewEncoder(w).Encode(envelope); err != nil && s.observer != nil {
		s.observer.Error(r.Context(), "Failed to encode JSON response", observability.Error(err))
	}
}

// writeError maps err onto a status code and writes the error envelope.
// Unexpected errors are logged and reported without their message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	envelope := Envelope{Error: err.Error()}
	var validationErr *tool.ValidationError
	if errors.As(err, &validationErr) {
		envelope.Details = validationErr.Fields
	}
	if status == http.StatusInternalServerError {
		if s.observer != nil {
			s.observer.Error(r.Context(), "Unhandled error", observability.Error(err))
		}
		envelope.Error = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil && s.observer != nil {
		s.observer.Error(r.Context(), "Failed to encode error response", observability.Error(err))
	}
}

// StatusFor returns the HTTP status for an error from a tool or resolver:
// 400 for invalid input, 404 for unknown tools, unknown catalogs and
// unmatched queries, 500 otherwise.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, resolve.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, resolve.ErrNotFound),
		errors.Is(err, tool.ErrUnknownTool),
		errors.Is(err, dataset.ErrUnknownCatalog):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
