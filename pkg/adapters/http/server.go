// Package http exposes program storage and live sessions over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds request bodies (program documents are small).
const maxBodySize = 1 << 20

// Server serves the HTTP API on top of a session manager.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.logger

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))

	r.Route("/programs", func(r chi.Router) {
		r.Get("/", server.ListPrograms)
		r.Get("/{name}", server.GetProgram)
		r.Put("/{name}", server.PutProgram)
		r.Delete("/{name}", server.DeleteProgram)
		r.Post("/{name}/validate", server.ValidateProgram)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Post("/", server.CreateSession)
		r.Get("/{id}", server.GetSession)
		r.Delete("/{id}", server.DeleteSession)
		r.Post("/{id}/step", server.StepSession)
		r.Post("/{id}/run", server.RunSession)
		r.Get("/{id}/events", server.SubscribeEvents)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

// ListPrograms handles GET /programs.
func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	names, err := s.Sessions.Programs().List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"programs": names})
}

// GetProgram handles GET /programs/{name}.
func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.Sessions.Programs().Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromDomain(program))
}

// PutProgram handles PUT /programs/{name}. The body is a YAML or JSON program
// document; the name in the path wins over the one in the body.
func (s *Server) PutProgram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	doc, err := dto.Unmarshal(data)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	doc.Name = name
	program, err := doc.ToDomain()
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.Sessions.Programs().Save(r.Context(), program); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("program saved", "program", name, "transitions", len(program.Table))
	s.writeJSON(w, http.StatusOK, dto.FromDomain(program))
}

// DeleteProgram handles DELETE /programs/{name}.
func (s *Server) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Programs().Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateProgram handles POST /programs/{name}/validate.
func (s *Server) ValidateProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.Sessions.Programs().Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	violations := runtime.Validate(program.Table, program.Halting, program.Symbols())
	if violations == nil {
		violations = []domain.Violation{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"program":    program.Name,
		"valid":      len(violations) == 0,
		"violations": violations,
	})
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Program string `json:"program"`
}

// RunRequest is the body of POST /sessions/{id}/run.
type RunRequest struct {
	MaxSteps *int `json:"max_steps,omitempty"`
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Program == "" {
		s.writeError(w, fmt.Errorf("%w: program is required", errBadRequest))
		return
	}

	snap, err := s.Sessions.Create(r.Context(), body.Program)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+snap.ID)
	s.writeJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles POST /sessions/{id}/step.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Step(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(snap)
	s.writeJSON(w, http.StatusOK, snap)
}

// RunSession handles POST /sessions/{id}/run. An empty body uses the default budget.
func (s *Server) RunSession(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	maxSteps := domain.DefaultMaxSteps
	if body.MaxSteps != nil {
		maxSteps = *body.MaxSteps
	}

	snap, err := s.Sessions.Run(r.Context(), chi.URLParam(r, "id"), maxSteps)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(snap)
	s.writeJSON(w, http.StatusOK, snap)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Every step or run
// on the session pushes its snapshot to subscribers.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Get(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcast(snap session.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to encode snapshot for subscribers", "session_id", snap.ID, "err", err)
		return
	}
	s.Streams.Broadcast(snap.ID, string(data))
}

// -- Helpers --

var errBadRequest = errors.New("bad request")

func (s *Server) decode(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProgramNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, runtime.ErrTerminated):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, runtime.ErrInvalidBudget),
		errors.Is(err, domain.ErrInvalidProgram),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, compiler.ErrMalformedLine):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
