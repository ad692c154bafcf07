package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"luminafi/pkg/logger"
)

// Client is one connected wallet's WebSocket.
type Client struct {
	Wallet string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager keys connections by wallet address and pushes loan lifecycle and
// transaction outcome events to the owning wallet.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.Wallet] = client
				m.mutex.Unlock()
				logger.Debug("WS client registered: %s", client.Wallet)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.Wallet]; ok {
					delete(m.clients, client.Wallet)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("WS client unregistered: %s", client.Wallet)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Notify sends one event to the wallet's connection if it is online.
// Delivery is best-effort; a slow client is dropped rather than blocked on.
func (m *Manager) Notify(wallet, event string, payload any) {
	message, err := json.Marshal(map[string]any{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		return
	}

	m.mutex.RLock()
	client, ok := m.clients[wallet]
	m.mutex.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("WS client %s too slow, dropping connection", wallet)
		m.Unregister <- client
	}
}

// ReadPump discards inbound frames; the socket is push-only. It exists to
// detect the close handshake and unregister the client.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
