package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// Conn wraps a websocket connection behind the runtime.Conn contract. All
// data writes go through the buffered send channel and a single write pump;
// Ping uses WriteControl, which gorilla allows concurrently with the pump.
type Conn struct {
	ws   *websocket.Conn
	log  *slog.Logger
	send chan []byte

	mu        sync.Mutex
	stopped   bool
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, log *slog.Logger, bufferSize int) *Conn {
	return &Conn{
		ws:   ws,
		log:  log,
		send: make(chan []byte, bufferSize),
	}
}

// Push serializes the payload and enqueues it. A full buffer means the
// client stopped reading; the frame is dropped and the caller informed.
func (c *Conn) Push(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling frame: %w", err)
	}

	// A late delivery may race the disconnect teardown.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return fmt.Errorf("connection closed")
	}
	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

func (c *Conn) Ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Terminate force-closes the socket with the generic application code. The
// read loop unblocks with an error and runs the regular disconnect path.
func (c *Conn) Terminate() {
	c.closeWith(CloseGeneric, "")
}

// closeWith sends a close frame with an application code, then drops the
// socket. At most one close frame ever goes out, whichever caller gets
// here first.
func (c *Conn) closeWith(code int, reason string) {
	c.closeOnce.Do(func() {
		deadline := time.Now().Add(writeWait)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.ws.Close()
	})
}

// reject writes a structured error frame followed by the close frame.
// Only valid before the write pump starts, so the direct write cannot race
// the pump.
func (c *Conn) reject(closeCode int, errCode, reason string) {
	if data, err := json.Marshal(errorFrame(errCode, reason)); err == nil {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteMessage(websocket.TextMessage, data)
	}
	c.closeWith(closeCode, reason)
}

func (c *Conn) writePump() {
	defer c.Terminate()

	for data := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// stop ends the write pump once the read loop is done.
func (c *Conn) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.send)
}
