package ws

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/cuptoss/internal/game"
	"github.com/playmatatu/cuptoss/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by middleware.WebSocketCORSCheck
	},
}

type outbound struct {
	data   []byte
	binary bool
}

// Client is one websocket connection bound to a game session. It is the session's Presenter.
type Client struct {
	id        string
	conn      *websocket.Conn
	session   *game.Session
	codec     protocol.Codec
	send      chan outbound
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, s *game.Session, codec protocol.Codec) *Client {
	return &Client{
		id:      newConnID(),
		conn:    conn,
		session: s,
		codec:   codec,
		send:    make(chan outbound, sendBuffer),
		done:    make(chan struct{}),
	}
}

func newConnID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "conn_" + hex.EncodeToString(b)
}

// Present encodes an event and queues it. It never blocks the session loop: when the
// buffer is full the message is dropped, since the next state frame supersedes it.
func (c *Client) Present(event string, payload any) {
	data, err := protocol.Encode(c.codec, event, payload)
	if err != nil {
		log.Printf("[WS] encode %s for session %s: %v", event, c.session.ID, err)
		return
	}
	select {
	case <-c.done:
	case c.send <- outbound{data: data, binary: c.codec.Binary()}:
	default:
		log.Printf("[WS] send buffer full for session %s, dropping %s", c.session.ID, event)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.Present(protocol.MsgError, protocol.ErrorData{Message: message})
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub tracks the single live connection of each session.
type Hub struct {
	clients    map[string]*Client // sessionID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serialises connection bookkeeping. A second connection for the same session replaces
// the first.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, exists := h.clients[client.session.ID]; exists && old != client {
				log.Printf("[WS] session %s reconnecting - closing old connection", client.session.ID)
				if err := old.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"), time.Now().Add(writeWait)); err != nil {
					log.Printf("[WS] close control to old connection of session %s: %v", client.session.ID, err)
				}
				old.close()
			}
			h.clients[client.session.ID] = client
			h.mu.Unlock()
			log.Printf("[WS] session %s connected (%s)", client.session.ID, client.codec)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.session.ID]; ok && cur == client {
				delete(h.clients, client.session.ID)
				log.Printf("[WS] session %s disconnected", client.session.ID)
			}
			h.mu.Unlock()
			client.close()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			kind := websocket.TextMessage
			if msg.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, msg.data); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.session.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for session %s: %v", c.session.ID, err)
				return
			}
		}
	}
}
