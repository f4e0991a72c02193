// Package http serves a local sandbox of the megaverse REST API.
// It keeps placed entities in memory and can inject failures to exercise
// the dispatcher's retry path.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/aretw0/megaverse/pkg/adapters/attrs"
	"github.com/aretw0/megaverse/pkg/adapters/memory"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// failureBody mimics the HTML error page an upstream proxy returns.
const failureBody = `<html><head><title>500 Internal Server Error</title></head>` +
	`<body><h1>Internal Server Error</h1><script>console.log("upstream")</script></body></html>`

var resourceKinds = map[string]domain.EntityKind{
	"polyanets": domain.EntityPolyanet,
	"soloons":   domain.EntitySoloon,
	"comeths":   domain.EntityCometh,
}

// Server is the sandbox API state.
type Server struct {
	mu        sync.Mutex
	universes map[string]*memory.Universe

	failEvery int64
	counter   atomic.Int64

	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// Option configures the sandbox.
type Option func(*Server)

// WithFailEvery makes every nth entity request fail with a 500 (0 disables).
func WithFailEvery(n int) Option {
	return func(s *Server) {
		s.failEvery = int64(n)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry exposes sandbox metrics on an existing registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer creates an empty sandbox.
func NewServer(opts ...Option) *Server {
	s := &Server{
		universes: make(map[string]*memory.Universe),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "megaverse_sandbox_requests_total",
			Help: "Requests served by the sandbox API",
		},
		[]string{"resource", "method", "code"},
	)
	s.registry.MustRegister(s.requests)
	return s
}

// Handler returns the chi router for the sandbox.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/{resource}", s.handleEntity)
		r.Delete("/{resource}", s.handleEntity)
		r.Get("/map/{candidateId}", s.handleMap)
	})

	return r
}

// Universe returns the state of one candidate, creating it on first use.
func (s *Server) Universe(candidateID string) *memory.Universe {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.universes[candidateID]
	if !ok {
		u = memory.NewUniverse()
		s.universes[candidateID] = u
	}
	return u
}

type entityRequest struct {
	CandidateID string `json:"candidateId"`
	Row         *int   `json:"row"`
	Column      *int   `json:"column"`
	Color       string `json:"color,omitempty"`
	Direction   string `json:"direction,omitempty"`
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	code := s.serveEntity(w, r, resource)
	s.requests.WithLabelValues(resource, r.Method, strconv.Itoa(code)).Inc()
}

func (s *Server) serveEntity(w http.ResponseWriter, r *http.Request, resource string) int {
	kind, ok := resourceKinds[resource]
	if !ok {
		return writeError(w, http.StatusNotFound, fmt.Sprintf("unknown resource %q", resource))
	}

	if n := s.counter.Add(1); s.failEvery > 0 && n%s.failEvery == 0 {
		s.logger.Warn("sandbox: injected failure", "resource", resource, "request", n)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, failureBody)
		return http.StatusInternalServerError
	}

	var body entityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("sandbox: invalid request body", "error", err)
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}
	if body.CandidateID == "" || body.Row == nil || body.Column == nil {
		return writeError(w, http.StatusBadRequest, "candidateId, row and column are required")
	}
	if *body.Row < 0 || *body.Column < 0 {
		return writeError(w, http.StatusBadRequest, "row and column must be non-negative")
	}

	u := s.Universe(body.CandidateID)
	if r.Method == http.MethodDelete {
		u.Remove(kind, *body.Row, *body.Column)
		s.logger.Debug("sandbox: removed", "kind", kind, "row", *body.Row, "column", *body.Column)
		writeJSON(w, http.StatusOK, map[string]any{})
		return http.StatusOK
	}

	entityAttrs, err := validateAttributes(kind, body)
	if err != nil {
		return writeError(w, http.StatusBadRequest, err.Error())
	}
	u.Place(kind, *body.Row, *body.Column, entityAttrs)
	s.logger.Debug("sandbox: placed", "kind", kind, "row", *body.Row, "column", *body.Column)
	writeJSON(w, http.StatusOK, map[string]any{})
	return http.StatusOK
}

func validateAttributes(kind domain.EntityKind, body entityRequest) (map[string]string, error) {
	switch kind {
	case domain.EntitySoloon:
		p, err := attrs.Soloon(map[string]string{domain.AttrColor: body.Color})
		if err != nil {
			return nil, err
		}
		return map[string]string{domain.AttrColor: p.Color}, nil
	case domain.EntityCometh:
		p, err := attrs.Cometh(map[string]string{domain.AttrDirection: body.Direction})
		if err != nil {
			return nil, err
		}
		return map[string]string{domain.AttrDirection: p.Direction}, nil
	}
	return nil, nil
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateId")
	writeJSON(w, http.StatusOK, map[string]any{
		"candidateId": candidateID,
		"entities":    s.Universe(candidateID).Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("sandbox: response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) int {
	writeJSON(w, status, map[string]any{"error": true, "message": msg})
	return status
}
