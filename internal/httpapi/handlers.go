package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/tool"
)

// HealthResponse reports the dataset currently served.
type HealthResponse struct {
	Status         string `json:"status"`
	DatasetVersion string `json:"dataset_version"`
	DatasetSource  string `json:"dataset_source"`
	Tools          int    `json:"tools"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	d := s.source.Snapshot()
	s.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:         "ok",
		DatasetVersion: d.Version,
		DatasetSource:  d.Source,
		Tools:          s.registry.Len(),
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.registry.List())
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, &tool.ValidationError{Tool: name, Err: err})
			return
		}
		s.writeError(w, r, err)
		return
	}

	output, err := s.registry.Call(r.Context(), name, string(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, json.RawMessage(output))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	catalog := chi.URLParam(r, "catalog")
	query := r.URL.Query().Get("q")

	strategies := s.matching.Strategies
	if raw := r.URL.Query().Get("strategies"); raw != "" {
		parsed, err := resolve.ParseStrategies(strings.Split(raw, ",")...)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		strategies = parsed
	}

	res, err := s.source.Snapshot().Resolve(catalog, query, strategies, s.matching.MinWordOverlapRatio)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}
