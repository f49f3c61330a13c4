package session

import (
	"errors"
	"sync"

	"github.com/castlebay/boardwalk/game/board"
	"github.com/castlebay/boardwalk/game/engine"
)

// ErrConnNotFound is returned when a connection id has no live handle.
var ErrConnNotFound = errors.New("connection not found")

// Conn is the write half of a live client connection. Implementations
// must be safe for concurrent use; WriteFrame on a closed connection is a
// no-op error, never a panic.
type Conn interface {
	ID() string
	WriteFrame(frame []byte) error
}

// Manager is the process-wide registry of game sessions and connections.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*engine.Session
	conns    map[string]Conn
	newBoard func() board.Board
}

// NewManager creates a registry whose sessions play on the default
// embedded board.
func NewManager() *Manager {
	return NewManagerWithLayout(board.New)
}

// NewManagerWithLayout creates a registry that builds each new session's
// board from the given layout source.
func NewManagerWithLayout(newBoard func() board.Board) *Manager {
	return &Manager{
		sessions: make(map[string]*engine.Session),
		conns:    make(map[string]Conn),
		newBoard: newBoard,
	}
}

// GetOrCreate returns the session for gameID, creating it on first
// reference. Exactly one session is ever created per game id regardless
// of how many connections race the first touch.
func (m *Manager) GetOrCreate(gameID string) *engine.Session {
	m.mu.RLock()
	sess, ok := m.sessions[gameID]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[gameID]; ok {
		return sess
	}
	sess = engine.NewSessionWithBoard(gameID, m.newBoard())
	m.sessions[gameID] = sess
	return sess
}

// Get returns the session for gameID if it exists.
func (m *Manager) Get(gameID string) (*engine.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[gameID]
	return sess, ok
}

// List returns all sessions in no particular order.
func (m *Manager) List() []*engine.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*engine.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Count returns the number of sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// AddConn registers a live connection handle under its id.
func (m *Manager) AddConn(c Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID()] = c
}

// RemoveConn drops the handle for id. Safe to call for ids that were
// already removed.
func (m *Manager) RemoveConn(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// ResolveConn returns the live handle for id, or ErrConnNotFound once the
// connection is gone.
func (m *Manager) ResolveConn(id string) (Conn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conns[id]
	if !ok {
		return nil, ErrConnNotFound
	}
	return c, nil
}

// ConnCount returns the number of live connections.
func (m *Manager) ConnCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}
