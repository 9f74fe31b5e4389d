// Package httpapi exposes the tool registry and the resolver over HTTP.
//
//	GET  /healthz
//	GET  /tools
//	POST /tools/{name}            body: tool input JSON
//	GET  /resolve/{catalog}?q=... optional strategies=alias,contains
//
// Successful responses are {"success":true,"data":...}; failures carry
// {"success":false,"error":"..."} with the status chosen by StatusFor.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/observability"
	"github.com/leofalp/mocktools/providers/tool"
)

// MaxBodyBytes limits tool input bodies.
const MaxBodyBytes = 1 << 20

type Server struct {
	registry *tool.Registry
	source   dataset.Source
	matching tool.Matching
	observer observability.Provider
	router   chi.Router
}

// NewServer creates a server with all routes configured. observer may be nil.
func NewServer(registry *tool.Registry, source dataset.Source, matching tool.Matching, observer observability.Provider) *Server {
	s := &Server{
		registry: registry,
		source:   source,
		matching: matching,
		observer: observer,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/tools", func(r chi.Router) {
		r.Get("/", s.handleListTools)
		r.Post("/{name}", s.handleCallTool)
	})

	s.router.Get("/resolve/{catalog}", s.handleResolve)
}

// observe attaches the provider to the request context and wraps the request
// in an http.request span.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.observer == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := observability.ContextWithObserver(r.Context(), s.observer)
		ctx, span := s.observer.StartSpan(ctx, observability.SpanHTTPRequest,
			observability.String(observability.AttrHTTPMethod, r.Method),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		span.SetAttributes(
			observability.String(observability.AttrHTTPRoute, route),
			observability.Int(observability.AttrHTTPStatusCode, status),
			observability.Duration(observability.AttrDuration, time.Since(start)),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(observability.StatusError, http.StatusText(status))
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	})
}
