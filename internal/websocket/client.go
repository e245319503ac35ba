package websocket

import (
	"sync"
	"time"

	"alignai-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 64
)

// Conn is the slice of *websocket.Conn the client needs.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one open interview channel.
type Client struct {
	conn      Conn
	SessionID uuid.UUID
	UserID    uuid.UUID

	mu     sync.Mutex
	send   chan []byte
	closed bool

	// closed once the writer has flushed and closed the connection
	done   chan struct{}
	logger logger.ILogger
}

func NewClient(conn Conn, sessionID, userID uuid.UUID, log logger.ILogger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{
		conn:      conn,
		SessionID: sessionID,
		UserID:    userID,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
		logger:    log,
	}
}

// Enqueue queues msg for the writer without blocking. It reports false when the
// client is closing or its queue is full.
func (c *Client) Enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend stops accepting messages; the writer drains what is queued.
func (c *Client) closeSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)
	return true
}

// Wait blocks until the writer has finished or timeout passes.
func (c *Client) Wait(timeout time.Duration) {
	select {
	case <-c.done:
	case <-time.After(timeout):
		c.conn.Close()
	}
}

// readPump forwards text frames to inbound until the connection fails or stop
// is closed. inbound is closed on exit.
func (c *Client) readPump(inbound chan<- []byte, stop <-chan struct{}) {
	defer close(inbound)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Client", "Unexpected close", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		select {
		case inbound <- message:
		case <-stop:
			return
		}
	}
}

// writePump writes queued messages in order, one frame each, and pings the
// peer. When the queue is closed it sends a close frame and closes the conn.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("Client", "Write failed", map[string]interface{}{"session_id": c.SessionID, "error": err.Error()})
				c.drain()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.drain()
				return
			}
		}
	}
}

// drain marks the client closed after a write failure so producers stop
// queueing.
func (c *Client) drain() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
