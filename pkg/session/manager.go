package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

const (
	// DefaultWindow is the half width of the tape window in snapshots.
	DefaultWindow = 10
	// DefaultStepLimit caps a single Run request.
	DefaultStepLimit = 1_000_000
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// session is a live machine and its bookkeeping.
type session struct {
	id      string
	program string
	engine  *runtime.Engine
	created time.Time
	last    *domain.Outcome
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID      string          `json:"id"`
	Program string          `json:"program"`
	State   domain.StateID  `json:"state"`
	Head    int             `json:"head"`
	Mode    domain.Mode     `json:"mode"`
	Steps   int             `json:"steps"`
	Tape    string          `json:"tape"`
	Window  int             `json:"window"`
	Created time.Time       `json:"created"`
	Last    *domain.Outcome `json:"last,omitempty"`
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	programs ports.ProgramStore

	mu    sync.Mutex            // Global lock for the lock map
	locks map[string]*lockEntry // Map of active locks

	smu      sync.RWMutex
	sessions map[string]*session

	logger     *slog.Logger
	engineOpts []runtime.EngineOption
	window     int
	stepLimit  int
	newID      func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithEngineOptions are applied to every engine the Manager creates.
func WithEngineOptions(opts ...runtime.EngineOption) Option {
	return func(m *Manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

// WithWindow sets the tape window half width used in snapshots.
func WithWindow(halfWidth int) Option {
	return func(m *Manager) {
		if halfWidth >= 0 {
			m.window = halfWidth
		}
	}
}

// WithStepLimit caps the budget a single Run call may request.
func WithStepLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.stepLimit = n
		}
	}
}

// NewManager creates a Manager that resolves program names through programs.
func NewManager(programs ports.ProgramStore, opts ...Option) *Manager {
	m := &Manager{
		programs:  programs,
		locks:     make(map[string]*lockEntry),
		sessions:  make(map[string]*session),
		logger:    logging.NewNop(),
		window:    DefaultWindow,
		stepLimit: DefaultStepLimit,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
// Sessions live in this process only, so an in-process mutex is sufficient.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	return fn(ctx)
}

// Create loads the named program and starts a fresh machine for it.
func (m *Manager) Create(ctx context.Context, programName string) (Snapshot, error) {
	program, err := m.programs.Load(ctx, programName)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load program %q: %w", programName, err)
	}

	engine, err := runtime.NewFromProgram(program, m.engineOpts...)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build machine for %q: %w", programName, err)
	}

	s := &session{
		id:      m.newID(),
		program: program.Name,
		engine:  engine,
		created: time.Now(),
	}
	// Snapshot before publishing: once listed, other callers may step the machine.
	snap := m.snapshot(s)

	m.smu.Lock()
	m.sessions[s.id] = s
	m.smu.Unlock()

	m.logger.Info("session created", "session_id", s.id, "program", s.program)
	return snap, nil
}

func (m *Manager) lookup(id string) (*session, error) {
	m.smu.RLock()
	defer m.smu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Step advances the session's machine by one transition.
func (m *Manager) Step(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.lookup(id)
		if err != nil {
			return err
		}
		out, err := s.engine.Step()
		if err != nil {
			return err
		}
		s.last = &out
		snap = m.snapshot(s)
		return nil
	})
	return snap, err
}

// Run drives the session's machine for up to maxSteps transitions.
// A budget larger than the step limit is clamped to it.
func (m *Manager) Run(ctx context.Context, id string, maxSteps int) (Snapshot, error) {
	if maxSteps > m.stepLimit {
		m.logger.Warn("step budget clamped", "session_id", id, "requested", maxSteps, "limit", m.stepLimit)
		maxSteps = m.stepLimit
	}

	var snap Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := m.lookup(id)
		if err != nil {
			return err
		}
		out, err := s.engine.Run(maxSteps, nil)
		if err != nil {
			return err
		}
		s.last = &out
		snap = m.snapshot(s)
		return nil
	})
	return snap, err
}

// Get returns a snapshot of the session.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.lookup(id)
		if err != nil {
			return err
		}
		snap = m.snapshot(s)
		return nil
	})
	return snap, err
}

// Delete discards the session. Unknown IDs are not an error.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.smu.Lock()
		delete(m.sessions, id)
		m.smu.Unlock()
		return nil
	})
}

// List returns the live session IDs in ascending order.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	m.smu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.smu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}

// Programs returns the underlying program store.
func (m *Manager) Programs() ports.ProgramStore {
	return m.programs
}

func (m *Manager) snapshot(s *session) Snapshot {
	e := s.engine
	// Render only fails for a negative width, which WithWindow rules out.
	window, _ := e.Tape().Render(e.Head(), m.window)
	snap := Snapshot{
		ID:      s.id,
		Program: s.program,
		State:   e.State(),
		Head:    e.Head(),
		Mode:    e.Mode(),
		Steps:   e.Steps(),
		Tape:    window,
		Window:  m.window,
		Created: s.created,
	}
	if s.last != nil {
		out := *s.last
		snap.Last = &out
	}
	return snap
}
