package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 16
)

var errSendBufferFull = errors.New("send buffer is full")

// client is one browser tab. Both players share it.
type client struct {
	logger *slog.Logger
	conn   *websocket.Conn
	send   chan []byte

	// sessionID comes from the upgrade request cookie and is used when a
	// message doesn't name a session.
	sessionID string
}

func newClient(logger *slog.Logger, conn *websocket.Conn, sessionID string) *client {
	return &client{
		logger:    logger,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		sessionID: sessionID,
	}
}

// readPump reads messages until the peer goes away and dispatches each one in
// order. It owns closing the send channel.
func (that *client) readPump(ctx context.Context, dispatch func(context.Context, *client, *Message)) {
	log := that.logger.With("method", "readPump")

	defer func() {
		close(that.send)
		_ = that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError("", "invalid message"); err != nil {
				log.Error("failed to send error response", "error", err)
			}
			continue
		}

		dispatch(ctx, that, &message)
	}
}

// writePump writes queued replies and keeps the connection alive with pings.
func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case that.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (that *client) sendError(action, message string) error {
	return that.sendMessage(action, ResponsePayload{Error: message})
}
