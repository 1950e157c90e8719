package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write to a peer.
	writeWait = 10 * time.Second

	// pongWait is how long a peer may stay silent before the read side
	// gives up. Pings go out at pingPeriod to keep healthy peers talking.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client is the gorilla/websocket implementation of Conn. Outbound frames go
// through a buffered channel drained by the write pump, so Emit never blocks
// the gateway; when the buffer is full the frame is dropped.
type Client struct {
	id     string
	socket *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewClient wraps an upgraded websocket connection.
func NewClient(id string, socket *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		socket: socket,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger.With("component", "ws-client", "conn_id", id),
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Emit queues an event frame for the write pump. A slow or dead peer loses
// frames rather than stalling dispatch for everyone else.
func (c *Client) Emit(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("marshal event payload", "event", event, "error", err)
		return
	}
	raw, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		c.logger.Error("marshal event frame", "event", event, "error", err)
		return
	}

	select {
	case c.send <- raw:
	case <-c.done:
	default:
		c.logger.Warn("send buffer full, dropping event", "event", event)
	}
}

// Close shuts down the write pump and the underlying socket. Safe to call
// more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// ReadLoop pumps inbound frames into the gateway until the peer disconnects
// or misbehaves, then runs disconnect cleanup.
func (c *Client) ReadLoop(ctx context.Context, gateway *Gateway) {
	defer func() {
		gateway.HandleDisconnect(c)
		c.Close()
	}()

	c.socket.SetReadLimit(maxMessageSize)
	_ = c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		return c.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}
		gateway.Dispatch(ctx, c, raw)
	}
}

// WriteLoop drains the send buffer to the peer and keeps the connection alive
// with periodic pings.
func (c *Client) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.socket.Close()
	}()

	for {
		select {
		case raw := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
