package controllers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/middleware"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// clientSendBuffer bounds how far a slow client may lag before events are
// dropped for it.
const clientSendBuffer = 32

// AlertEvent is one message on the live alert stream: a freshly reported
// incident, a new SOS alert, or a ready messaging link.
type AlertEvent struct {
	Kind    string      `json:"kind"` // "crime_report", "sos_alert", "sos_link"
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

// AlertHub fans incoming events out to every connected map/dashboard client.
// Each client gets a buffered send channel drained by a single writer
// goroutine; the connection is never written from more than one goroutine.
type AlertHub struct {
	clients   map[*websocket.Conn]chan AlertEvent
	broadcast chan AlertEvent
	mu        sync.Mutex
}

func NewAlertHub() *AlertHub {
	hub := &AlertHub{
		clients:   make(map[*websocket.Conn]chan AlertEvent),
		broadcast: make(chan AlertEvent, 100),
	}
	go hub.run()
	return hub
}

func (h *AlertHub) run() {
	for event := range h.broadcast {
		h.mu.Lock()
		for conn, send := range h.clients {
			select {
			case send <- event:
			default:
				logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).
					Warn("Client send buffer full, dropping event.")
			}
		}
		h.mu.Unlock()
	}
}

// Register adds a connection and starts its writer goroutine.
func (h *AlertHub) Register(conn *websocket.Conn) {
	send := make(chan AlertEvent, clientSendBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()
	go h.writeLoop(conn, send)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client registered with AlertHub.")
}

// writeLoop is the sole writer for one connection. A write failure
// unregisters the client, which closes the channel and ends the loop.
func (h *AlertHub) writeLoop(conn *websocket.Conn, send chan AlertEvent) {
	for event := range send {
		if err := conn.WriteJSON(event); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).
					Info("Client connection closed during broadcast, unregistering.")
			} else {
				logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).
					Warn("Failed to send alert event to client, unregistering.")
			}
			h.Unregister(conn)
			return
		}
	}
}

// Unregister removes a connection and closes its send channel. Safe to call
// more than once for the same connection.
func (h *AlertHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
		logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client unregistered from AlertHub.")
	}
}

// Publish queues an event for broadcast. Stamps the event time when unset.
func (h *AlertHub) Publish(event AlertEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		logrus.Warn("Alert broadcast channel full, dropping event.")
	}
}

func (h *AlertHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var alertHub = NewAlertHub()

// HandleAlertStream upgrades the connection and keeps it registered until
// the client goes away. A token query parameter is optional; when present it
// must be valid.
func HandleAlertStream(c *gin.Context) {
	if tokenString := c.Query("token"); tokenString != "" {
		token, err := middleware.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	alertHub.Register(conn)
	defer alertHub.Unregister(conn)

	// The stream is one-way; reads only detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("Alert stream read error.")
			}
			break
		}
	}
}
