package ws

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 64 * 1024
)

// Client is one websocket session of one user. A user can hold several.
type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan any

	closeOnce sync.Once
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan any, 256),
	}
}

// Send queues a payload; a full buffer drops it rather than blocking the
// sender.
func (c *Client) Send(payload any) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Outbox exposes the pending payloads. The write pump consumes it; tests
// read it directly.
func (c *Client) Outbox() <-chan any { return c.send }

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// controlFrame is what the client sends us: room membership changes.
type controlFrame struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

// readPump consumes control frames until the connection drops. Rooms a user
// is not part of are ignored.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame controlFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if !roomHasMember(frame.Room, c.UserID) {
			continue
		}
		switch frame.Type {
		case "join":
			hub.Join(c, frame.Room)
		case "leave":
			hub.Leave(c, frame.Room)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}

// room ids are "<idA>:<idB>" with the ids sorted.
func roomHasMember(room, userID string) bool {
	if room == "" || userID == "" {
		return false
	}
	return strings.HasPrefix(room, userID+":") || strings.HasSuffix(room, ":"+userID)
}
