package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

const writeWait = 5 * time.Second

// Conn wraps one websocket channel with a buffered outbound queue.
// Ordered delivery holds per channel; nothing is guaranteed across
// channels.
type Conn struct {
	id   domain.ConnID
	sock *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newConn(id domain.ConnID, sock *websocket.Conn, buffer int) *Conn {
	return &Conn{
		id:   id,
		sock: sock,
		send: make(chan core.Frame, buffer),
	}
}

func (c *Conn) ID() domain.ConnID { return c.id }

// TrySend queues a frame without blocking. A full queue means the peer is
// too slow; the frame is dropped and backpressure reported.
func (c *Conn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.sock.Close()
	c.mu.Unlock()
}

// WritePump drains the send queue onto the wire and keeps the channel
// alive with pings. Exits when the queue closes or a write fails.
func (c *Conn) WritePump(ctx context.Context, pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.sock.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "ws").Str("conn", string(c.id)).Msg("writePump set deadline")
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Str("conn", string(c.id)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump feeds inbound frames to onMessage until the channel dies.
// Transport-level errors are logged with their detail and end the loop;
// they never propagate further.
func (c *Conn) ReadPump(ctx context.Context, readLimit int64, pongWait time.Duration, onMessage func([]byte)) {
	defer c.Close()

	c.sock.SetReadLimit(readLimit)
	_ = c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.sock.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "ws").Str("conn", string(c.id)).Msg("readPump read error")
				}
				return
			}
			onMessage(data)
		}
	}
}
