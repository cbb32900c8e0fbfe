package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sudoku-arena/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// Client represents one player's WebSocket connection
type Client struct {
	id     string
	player domain.PlayerInfo
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger *slog.Logger
}

// ClientMessage represents a message from the client
type ClientMessage struct {
	Type           string `json:"type"`
	MatchID        int64  `json:"match_id,omitempty"`
	Period         string `json:"period,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds,omitempty"`
}

// NewClient creates a new WebSocket client for an authenticated player
func NewClient(hub *Hub, conn *websocket.Conn, player domain.PlayerInfo, logger *slog.Logger) *Client {
	return &Client{
		id:     uuid.New().String(),
		player: player,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.logger.Warn("invalid message format", "error", err)
			c.sendError("invalid message format")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// handleMessage processes incoming client messages
func (c *Client) handleMessage(msg *ClientMessage) {
	switch msg.Type {
	case MessageTypeJoinMatch:
		if msg.MatchID == 0 {
			c.sendError("match_id required")
			return
		}
		c.hub.JoinRoom(c, matchRoom(msg.MatchID))
		c.sendAck("joined", msg.MatchID)

	case MessageTypeLeaveMatch:
		if msg.MatchID != 0 {
			c.hub.LeaveRoom(c, matchRoom(msg.MatchID))
		}

	case MessageTypeProgress:
		if msg.MatchID == 0 {
			c.sendError("match_id required")
			return
		}
		c.hub.RelayProgress(msg.MatchID, c.player, msg.ElapsedSeconds)

	case MessageTypeSubscribe:
		period := domain.Period(msg.Period)
		if !period.Valid() {
			c.sendError("valid period required for subscribe")
			return
		}
		c.hub.JoinRoom(c, standingsRoom(period))

	case MessageTypeUnsubscribe:
		period := domain.Period(msg.Period)
		if period.Valid() {
			c.hub.LeaveRoom(c, standingsRoom(period))
		}

	case MessageTypePing:
		c.sendPong()

	default:
		c.logger.Debug("unknown message type", "type", msg.Type)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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

// sendError sends an error message to the client
func (c *Client) sendError(errMsg string) {
	msg := Message{
		Type:      MessageTypeError,
		Data:      map[string]string{"error": errMsg},
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
	}
}

// sendAck sends an acknowledgment message to the client
func (c *Client) sendAck(action string, matchID int64) {
	msg := Message{
		Type:      action,
		MatchID:   matchID,
		Data:      map[string]string{"status": "ok"},
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
	}
}

// sendPong sends a pong response
func (c *Client) sendPong() {
	msg := Message{
		Type:      MessageTypePong,
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
	}
}

// ServeWs upgrades an authenticated request and wires the client into
// the hub
func ServeWs(hub *Hub, player domain.PlayerInfo, logger *slog.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(hub, conn, player, logger)
	hub.Register(client)

	go client.writePump()
	go client.readPump()

	logger.Debug("new websocket connection", "player_id", player.ID, "username", player.Username)
}
