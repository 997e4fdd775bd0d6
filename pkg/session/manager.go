package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a session.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager implements ports.Conversation on top of a Blueprint and a StateStore.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	blueprint *chatgraph.Blueprint
	store     ports.StateStore

	mu      sync.Mutex
	locks   map[string]*lockEntry
	pickers map[string]domain.AnswerPicker

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.Conversation = (*Manager)(nil)

// ErrEmptySessionID is returned when a turn is requested without a session ID.
var ErrEmptySessionID = errors.New("session id cannot be empty")

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager serving sessions spawned from bp.
func NewManager(bp *chatgraph.Blueprint, store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		blueprint: bp,
		store:     store,
		locks:     make(map[string]*lockEntry),
		pickers:   make(map[string]domain.AnswerPicker),
		lockTTL:   DefaultLockTTL,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and call release(sessionID) after unlocking.
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

// release decrements the reference count and deletes the entry at zero.
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

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Send routes text through the session's agent and persists its new position.
// Input is sanitized first; see SanitizeInput.
func (m *Manager) Send(ctx context.Context, sessionID, text string) (*domain.Reply, error) {
	text, err := SanitizeInput(text)
	if err != nil {
		return nil, err
	}
	return m.turn(ctx, sessionID, true, func(c *chatgraph.Controller) (domain.Turn, error) {
		return c.Send(text)
	})
}

// Reset moves the session's agent back to the root.
func (m *Manager) Reset(ctx context.Context, sessionID string) (*domain.Reply, error) {
	return m.turn(ctx, sessionID, true, func(c *chatgraph.Controller) (domain.Turn, error) {
		return c.Reset()
	})
}

// Greet emits the answer of the session's current node, creating the session
// at the root if needed. It does not count as a turn.
func (m *Manager) Greet(ctx context.Context, sessionID string) (*domain.Reply, error) {
	return m.turn(ctx, sessionID, false, func(c *chatgraph.Controller) (domain.Turn, error) {
		return c.Greet()
	})
}

// picker returns the session's answer picker, so stateful policies keep
// their position across turns.
func (m *Manager) picker(sessionID string) (domain.AnswerPicker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.pickers[sessionID]; ok {
		return p, nil
	}
	p, err := m.blueprint.NewPicker()
	if err != nil {
		return nil, err
	}
	m.pickers[sessionID] = p
	return p, nil
}

func (m *Manager) forgetPicker(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pickers, sessionID)
}

func (m *Manager) turn(ctx context.Context, sessionID string, count bool, step func(*chatgraph.Controller) (domain.Turn, error)) (*domain.Reply, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	var reply *domain.Reply
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		snap, err := m.loadOrStart(ctx, sessionID)
		if err != nil {
			return err
		}

		var opts []chatgraph.Option
		p, err := m.picker(sessionID)
		if err != nil {
			return fmt.Errorf("failed to create answer picker for session %s: %w", sessionID, err)
		}
		if p != nil {
			opts = append(opts, chatgraph.WithAnswerPicker(p))
		}

		ctrl, err := m.blueprint.Spawn(opts...)
		if err != nil {
			return fmt.Errorf("failed to spawn session %s: %w", sessionID, err)
		}
		defer ctrl.Close()

		if err := ctrl.Restore(snap.NodeID); err != nil {
			// The graph changed under a stored session.
			m.logger.Warn("stored node no longer exists, restarting at root",
				"session_id", sessionID,
				"node_id", snap.NodeID,
				"err", err,
			)
		}

		turn, err := step(ctrl)
		if err != nil {
			return err
		}

		snap.NodeID = turn.To
		if count {
			snap.Turns++
		}
		snap.UpdatedAt = m.now().UTC()
		if err := m.store.Save(ctx, sessionID, snap); err != nil {
			return fmt.Errorf("failed to save session %s: %w", sessionID, err)
		}

		reply = domain.NewReply(sessionID, turn, snap.Turns)
		m.logger.Debug("turn completed",
			"session_id", sessionID,
			"from", turn.From,
			"to", turn.To,
			"match", turn.Match.Kind,
		)
		return nil
	})
	return reply, err
}

// loadOrStart returns the stored snapshot or a fresh one at the root.
func (m *Manager) loadOrStart(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	snap, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}
	snap = domain.NewSnapshot(sessionID, m.blueprint.Graph().Root().ID())
	snap.UpdatedAt = m.now().UTC()
	return snap, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		m.forgetPicker(sessionID)
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Graph returns the template graph.
func (m *Manager) Graph() *domain.Graph { return m.blueprint.Graph() }

// Avatar returns the avatar shared by every session.
func (m *Manager) Avatar() *domain.Avatar { return m.blueprint.Avatar() }

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore { return m.store }
