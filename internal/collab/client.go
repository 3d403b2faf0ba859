package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second

	// A full-document sync of a large path document is the biggest frame
	// either side sends; operations and presence are far smaller.
	maxMessageBytes = 256 * 1024

	sendBufferSize = 256
)

// Client is one WebSocket connection in a project room.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	UserID      string
	DisplayName string
	ProjectID   string
	ClientID    string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, displayName, projectID, clientID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		UserID:      userID,
		DisplayName: displayName,
		ProjectID:   projectID,
		ClientID:    clientID,
	}
}

func (c *Client) logAttrs() []any {
	return []any{"user", c.UserID, "project", c.ProjectID, "client", c.ClientID}
}

// ReadPump reads frames until the connection drops, stamps each message
// with the connection's identity (clients can't spoof another user), and
// hands it to the hub. Malformed frames get an error reply instead of a
// silent drop so a buggy frontend notices.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageBytes)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", append(c.logAttrs(), "error", err)...)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("malformed message", append(c.logAttrs(), "error", err)...)
			errPayload, _ := json.Marshal(map[string]string{"error": "malformed message"})
			c.Send(&Message{Type: TypeError, Payload: errPayload})
			continue
		}

		msg.UserID = c.UserID
		msg.ClientID = c.ClientID
		msg.ProjectID = c.ProjectID

		c.hub.handleMessage(c, &msg)
	}
}

// WritePump drains the send buffer and keeps the connection alive with
// pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				slog.Debug("write error", append(c.logAttrs(), "error", err)...)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				slog.Debug("ping failed", c.logAttrs()...)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues a message, dropping it if the client can't keep up. A
// client that falls this far behind will resync from the next doc.sync
// anyway.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", append(c.logAttrs(), "error", err)...)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("send buffer full, dropping message", append(c.logAttrs(), "type", msg.Type)...)
	}
}
