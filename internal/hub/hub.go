// internal/hub/hub.go
//
// WebSocket fan-out of game events.
//
// Every connection gets the catalog and a state snapshot on join, then each
// published event as {"type": ..., "data": ...}. Clients may send
//
//	{"type":"start"}
//	{"type":"select","word":"Fig"}
//
// which are forwarded to the presenter. Selection results go back to the
// sender only, as {"type":"selection","data":{"count":1,"rejected":false}}.
//
// Slow clients whose send buffer fills are dropped.

package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/psychic/internal/game"
)

const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 1024
)

// Commands is the presenter surface the hub drives.
type Commands interface {
	Catalog() game.CatalogReady
	Snapshot() game.Snapshot
	StartSession() game.SessionReset
	Submit(word string) (game.Selection, *game.RoundEvaluated)
}

// Envelope is the wire format for every server→client message.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// inbound is the wire format for client→server messages.
type inbound struct {
	Type string `json:"type"`
	Word string `json:"word"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients.
type Hub struct {
	cmd      Commands
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// New returns a hub forwarding client commands to cmd. Upgrades are
// accepted from origin only; an empty origin accepts any.
func New(cmd Commands, origin string) *Hub {
	return &Hub{
		cmd: cmd,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return origin == "" || o == "" || o == origin
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish implements presenter.Sink.
func (h *Hub) Publish(ev game.Event) {
	msg, err := json.Marshal(Envelope{Type: ev.EventType(), Data: ev})
	if err != nil {
		log.Error().Err(err).Str("type", ev.EventType()).Msg("encode event")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Warn().Str("remote", c.conn.RemoteAddr().String()).Msg("dropping slow client")
			h.removeLocked(c)
		}
	}
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and runs the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	// The catalog never changes, so it can go out before registration.
	c.enqueue(h.cmd.Catalog())

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	// Snapshot only after registering: an event published in between is
	// queued for c, and the snapshot that follows already reflects it.
	// Snapshot takes the presenter lock, so h.mu must not be held here.
	h.sendTo(c, stateMessage(h.cmd.Snapshot()))
	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("client connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

// state wraps a snapshot for the wire.
type state struct{ game.Snapshot }

func (state) EventType() string { return "state" }

func stateMessage(s game.Snapshot) game.Event { return state{s} }

// selection wraps a selection result for the wire.
type selection struct{ game.Selection }

func (selection) EventType() string { return "selection" }

func (c *client) enqueue(ev game.Event) {
	msg, err := json.Marshal(Envelope{Type: ev.EventType(), Data: ev})
	if err != nil {
		log.Error().Err(err).Msg("encode message")
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// sendTo queues ev for c alone, unless c has already been dropped.
func (h *Hub) sendTo(c *client, ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.enqueue(ev)
	}
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("invalid ws message")
			continue
		}
		switch msg.Type {
		case "start":
			h.cmd.StartSession()
		case "select":
			sel, _ := h.cmd.Submit(msg.Word)
			h.sendTo(c, selection{sel})
		default:
			log.Debug().Str("type", msg.Type).Msg("unknown ws message")
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// removeLocked unregisters c and closes its send channel once.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
