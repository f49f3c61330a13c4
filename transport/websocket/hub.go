package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Watchers never send game
	// commands, so this only needs to fit control traffic.
	maxMessageSize = 512

	// feedBacklog bounds the publish queue. Publish is called with a game
	// session locked, so it must never block; overflow drops the envelope.
	feedBacklog = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// feedMessage wraps a published envelope for delivery to watchers.
type feedMessage struct {
	gameID string
	data   []byte
}

// Client is one connected watcher, pinned to a single game id.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub fans the router's outbound envelopes out to read-only websocket
// watchers, keyed by game id. It implements the router's event sink
// interface; watchers see exactly the frames the game clients see, as
// plain JSON without the length prefix.
type Hub struct {
	logger *zap.SugaredLogger

	// Registered watchers by game id. Owned by the Run goroutine.
	games map[string]map[*Client]bool

	feed       chan feedMessage
	register   chan *Client
	unregister chan *Client
}

// NewHub creates an event feed hub. Call Run in its own goroutine before
// registering the hub as an event sink.
func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		logger:     logger,
		games:      make(map[string]map[*Client]bool),
		feed:       make(chan feedMessage, feedBacklog),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop and the only goroutine touching the watcher
// maps.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.feed:
			h.deliver(msg)
		}
	}
}

// Publish queues an outbound envelope for the watchers of its game. It is
// called with the game session locked and never blocks; when the feed is
// saturated the envelope is dropped.
func (h *Hub) Publish(gameID string, env *protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Warnw("failed to marshal feed envelope", "game", gameID, "error", err)
		return
	}

	select {
	case h.feed <- feedMessage{gameID: gameID, data: data}:
	default:
		h.logger.Debugw("event feed saturated, dropping envelope", "game", gameID, "type", env.Type)
	}
}

// ServeWS upgrades an observer request and subscribes it to one game's
// event feed.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	if h.games[client.gameID] == nil {
		h.games[client.gameID] = make(map[*Client]bool)
	}
	h.games[client.gameID][client] = true

	h.logger.Infow("watcher registered", "game", client.gameID, "watchers", len(h.games[client.gameID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.games[client.gameID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.games, client.gameID)
	}

	h.logger.Infow("watcher unregistered", "game", client.gameID, "watchers", len(clients))
}

func (h *Hub) deliver(msg feedMessage) {
	for client := range h.games[msg.gameID] {
		select {
		case client.send <- msg.data:
		default:
			// Watcher cannot keep up; cut it loose rather than stall
			// the feed.
			h.unregisterClient(client)
		}
	}
}

// readPump drains the watcher connection. Inbound payloads are ignored;
// the pump exists to run the pong handler and notice disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debugw("watcher read error", "game", c.gameID, "error", err)
			}
			break
		}
	}
}

// writePump pumps queued envelopes to the watcher connection.
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
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
