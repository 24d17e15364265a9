package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one driver UI connection
type Client struct {
	UserID string
	conn   *websocket.Conn
	mu     sync.Mutex
	done   chan struct{}
}

func (cl *Client) write(messageType int, data []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(messageType, data)
}

// Manager manages WebSocket connections and client state.
// A newer connection for the same user replaces the older one.
type Manager struct {
	sync.RWMutex
	clients  map[string]*Client
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and blocks until the client goes away
func (m *Manager) HandleConnection(c echo.Context, userID string) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{UserID: userID, conn: ws, done: make(chan struct{})}
	m.addClient(client)
	defer func() {
		m.removeClient(client)
		ws.Close()
	}()

	logger.Info("Driver UI connected", logger.UserID(userID))

	go m.pingLoop(client)

	ws.SetReadLimit(4096)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The stream is server to client only; reading drives control frames
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read failed", logger.UserID(userID), logger.Err(err))
			}
			close(client.done)
			return nil
		}
	}
}

func (m *Manager) pingLoop(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-client.done:
			return
		case <-ticker.C:
			if err := client.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	old, exists := m.clients[client.UserID]
	m.clients[client.UserID] = client
	m.Unlock()

	if exists {
		_ = old.conn.Close()
	}
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
	}
}

// IsConnected reports whether the user has a live UI connection
func (m *Manager) IsConnected(userID string) bool {
	m.RLock()
	defer m.RUnlock()
	_, exists := m.clients[userID]
	return exists
}

// ClientCount returns the number of connected clients
func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

func encodeMessage(event string, data interface{}) ([]byte, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshaling message data: %w", err)
	}
	return json.Marshal(models.WSMessage{Event: event, Data: rawData})
}

// NotifyClient sends an event to a specific client. It returns false when
// the user has no connection or the write failed.
func (m *Manager) NotifyClient(userID string, event string, data interface{}) bool {
	m.RLock()
	client, exists := m.clients[userID]
	m.RUnlock()

	if !exists {
		return false
	}

	payload, err := encodeMessage(event, data)
	if err != nil {
		logger.Error("Error encoding websocket message",
			logger.UserID(userID),
			logger.String("event", event),
			logger.Err(err))
		return false
	}

	if err := client.write(websocket.TextMessage, payload); err != nil {
		logger.Warn("Error sending message to client",
			logger.UserID(userID),
			logger.Err(err))
		return false
	}
	return true
}

// CloseAll disconnects every client
func (m *Manager) CloseAll() {
	m.Lock()
	clients := m.clients
	m.clients = make(map[string]*Client)
	m.Unlock()

	for _, client := range clients {
		_ = client.write(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = client.conn.Close()
	}
}
