package websocket

import (
	"sync"
	"time"

	"github.com/xpanvictor/quickpost/internal/domains/conversation"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

type connection struct {
	session *Session
	driver  *conversation.Driver
}

// ConnectionManager tracks live conversations and reaps idle ones
type ConnectionManager struct {
	logger         *Logger.Logger
	connections    map[string]connection
	mutex          sync.RWMutex
	cleanupTicker  *time.Ticker
	stopCleanup    chan struct{}
	stopOnce       sync.Once
	sessionTimeout time.Duration
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(logger *Logger.Logger, sessionTimeout time.Duration) *ConnectionManager {
	if sessionTimeout <= 0 {
		sessionTimeout = 10 * time.Minute
	}
	cm := &ConnectionManager{
		logger:         logger,
		connections:    make(map[string]connection),
		stopCleanup:    make(chan struct{}),
		sessionTimeout: sessionTimeout,
	}

	cm.startCleanupRoutine()

	return cm
}

// RegisterConnection registers a conversation. A reconnect with the same
// session id replaces, and closes, the older connection.
func (cm *ConnectionManager) RegisterConnection(session *Session, driver *conversation.Driver) {
	cm.mutex.Lock()
	old, exists := cm.connections[session.SessionID]
	cm.connections[session.SessionID] = connection{session: session, driver: driver}
	cm.mutex.Unlock()

	if exists {
		cm.logger.Infof("Replacing connection for session %s", session.SessionID)
		closeConnection(old)
	}
	cm.logger.Infof("Registered conversation session %s", session.SessionID)
}

// UnregisterConnection removes session if it is still the registered one
func (cm *ConnectionManager) UnregisterConnection(session *Session) {
	cm.mutex.Lock()
	conn, exists := cm.connections[session.SessionID]
	if exists && conn.session == session {
		delete(cm.connections, session.SessionID)
	}
	cm.mutex.Unlock()

	cm.logger.Infof("Unregistering conversation session %s", session.SessionID)
	if exists && conn.session == session {
		closeConnection(conn)
	}
}

func closeConnection(c connection) {
	c.driver.Close()
	c.session.Close()
}

// GetSessionCount returns the number of active conversations
func (cm *ConnectionManager) GetSessionCount() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	return len(cm.connections)
}

// startCleanupRoutine starts a goroutine to clean up expired sessions
func (cm *ConnectionManager) startCleanupRoutine() {
	cm.cleanupTicker = time.NewTicker(time.Minute)

	go func() {
		for {
			select {
			case <-cm.cleanupTicker.C:
				cm.cleanupExpiredSessions()
			case <-cm.stopCleanup:
				cm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// cleanupExpiredSessions closes conversations idle for longer than the timeout
func (cm *ConnectionManager) cleanupExpiredSessions() {
	cm.mutex.Lock()
	expired := make([]connection, 0)
	for id, c := range cm.connections {
		if c.session.IsExpired(cm.sessionTimeout) {
			expired = append(expired, c)
			delete(cm.connections, id)
		}
	}
	cm.mutex.Unlock()

	for _, c := range expired {
		cm.logger.Infof("Cleaning up expired session %s", c.session.SessionID)
		closeConnection(c)
	}
	if len(expired) > 0 {
		cm.logger.Infof("Cleaned up %d expired sessions", len(expired))
	}
}

// Close shuts down the connection manager
func (cm *ConnectionManager) Close() error {
	cm.stopOnce.Do(func() { close(cm.stopCleanup) })

	cm.mutex.Lock()
	all := cm.connections
	cm.connections = make(map[string]connection)
	cm.mutex.Unlock()

	for id, c := range all {
		cm.logger.Infof("Closing session %s", id)
		closeConnection(c)
	}

	cm.logger.Infof("Connection manager closed")
	return nil
}

// GetStats returns connection manager statistics
func (cm *ConnectionManager) GetStats() map[string]interface{} {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	sessionStats := make([]map[string]interface{}, 0, len(cm.connections))
	for _, c := range cm.connections {
		st := c.driver.Snapshot()
		sessionStats = append(sessionStats, map[string]interface{}{
			"session_id":   c.session.SessionID,
			"connected_at": c.session.ConnectedAt,
			"last_active":  c.session.LastActive(),
			"step":         st.Index,
			"status":       st.Status,
		})
	}

	return map[string]interface{}{
		"active_sessions": len(cm.connections),
		"session_timeout": cm.sessionTimeout.String(),
		"sessions":        sessionStats,
	}
}
