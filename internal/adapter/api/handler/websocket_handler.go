package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"luminafi/internal/adapter/api/middleware"
	"luminafi/internal/infrastructure/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager *websocket.Manager
}

func NewWebSocketHandler(manager *websocket.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
	}
}

// Connect upgrades the request and registers the wallet for push events.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil || !session.WalletConnected {
		return echo.NewHTTPError(http.StatusUnauthorized, "Wallet connection required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &websocket.Client{
		Wallet: session.WalletAddress,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}
	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager)
	return nil
}
