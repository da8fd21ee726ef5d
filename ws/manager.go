package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrNotConnected reports that a user has no open event feed.
var ErrNotConnected = errors.New("user not connected")

// Manager keeps track of active event-feed connections, one per user.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn // userID -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*websocket.Conn)}
}

// Register registers a user's connection, replacing any existing one.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[userID]; ok && old != conn {
		// close old connection to avoid leaks
		_ = old.Close()
	}
	m.connections[userID] = conn
}

// Unregister removes a user's connection.
func (m *Manager) Unregister(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[userID]; ok {
		_ = conn.Close()
		delete(m.connections, userID)
	}
}

// SendToUser sends a text message to the user's feed if connected. The
// payload only ever reaches the connection registered under that exact
// user id.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.RLock()
	conn, ok := m.connections[userID]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return ErrNotConnected
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// IsConnected returns whether a user currently has an open feed.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[userID]
	return ok
}

// List returns a copy of currently connected user IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
