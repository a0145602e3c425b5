// Package calendar streams booking lifecycle events to connected calendar views.
package calendar

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 256
)

// connection is one calendar tab. An empty facilities set means all facilities.
type connection struct {
	userID     int64
	admin      bool
	conn       *websocket.Conn
	send       chan []byte
	facilities map[int64]bool
}

func (c *connection) wants(facilityID int64) bool {
	return len(c.facilities) == 0 || c.facilities[facilityID]
}

// Hub fans events out to every open connection. A user may hold several.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast delivers ev to subscribers of its facility. Non-admin connections
// get private bookings redacted. Slow clients drop the event.
func (h *Hub) Broadcast(ev Event) {
	full, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("type", ev.Type).Msg("marshal calendar event")
		return
	}
	redacted := full
	if r := ev.Redacted(); r.Booking != ev.Booking {
		if redacted, err = json.Marshal(r); err != nil {
			return
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.wants(ev.CulturalCenterID) {
			continue
		}
		msg := redacted
		if c.admin {
			msg = full
		}
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Int64("user_id", c.userID).Str("type", ev.Type).Msg("calendar client too slow, event dropped")
		}
	}
}

// ServeWS registers conn and blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, admin bool, facilityIDs []int64) {
	c := &connection{
		userID:     userID,
		admin:      admin,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		facilities: make(map[int64]bool),
	}
	for _, id := range facilityIDs {
		c.facilities[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

type clientMessage struct {
	Type             string `json:"type"`
	CulturalCenterID int64  `json:"culturalCenterId"`
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Int64("user_id", c.userID).Msg("calendar socket closed")
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			c.facilities[msg.CulturalCenterID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.facilities, msg.CulturalCenterID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
