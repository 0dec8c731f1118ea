package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origins are enforced by the CORS layer and the identity cookie
		return true
	},
}

// Message is the frame pushed to activity stream clients.
type Message struct {
	Type  string               `json:"type"`
	Event models.ActivityEvent `json:"event"`
}

type roomMessage struct {
	sessionID string
	payload   []byte
}

// Hub fans activity events out to the clients of each game session. Run owns
// the client map; everything else talks to it through channels.
type Hub struct {
	rooms      map[string]map[*Client]bool
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan roomMessage, sendBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for client := range room {
					h.drop(client)
				}
			}
			return

		case client := <-h.register:
			room, ok := h.rooms[client.sessionID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.sessionID] = room
			}
			room[client] = true
			metrics.ActivityClients.Inc()
			logger.New().WithField("session", client.sessionID).
				WithField("clients", len(room)).Debug("activity client connected")

		case client := <-h.unregister:
			if h.rooms[client.sessionID][client] {
				h.drop(client)
				logger.New().WithField("session", client.sessionID).Debug("activity client disconnected")
			}

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.sessionID] {
				select {
				case client.send <- msg.payload:
				default:
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	room := h.rooms[client.sessionID]
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.sessionID)
	}
	close(client.send)
	metrics.ActivityClients.Dec()
}

// Publish queues event for every client of sessionID. It never blocks the
// caller; when the hub is backed up the event is dropped.
func (h *Hub) Publish(sessionID string, event models.ActivityEvent) {
	payload, err := json.Marshal(Message{Type: "activity", Event: event})
	if err != nil {
		logger.New().WithError(err).Warn("failed to encode activity event")
		return
	}
	select {
	case h.broadcast <- roomMessage{sessionID: sessionID, payload: payload}:
	default:
		logger.New().WithField("session", sessionID).Warn("activity hub is full, dropping event")
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.New().WithError(err).Warn("websocket read error")
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.New().WithError(err).Warn("websocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeSession upgrades r and subscribes the connection to sessionID.
func (h *Hub) ServeSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.New().WithError(err).Warn("websocket upgrade error")
		return
	}

	client := &Client{hub: h, conn: conn, sessionID: sessionID, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Handler serves GET .../sessions/{session}/ws.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	h.ServeSession(w, r, mux.Vars(r)["session"])
}
