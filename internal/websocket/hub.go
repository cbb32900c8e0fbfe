package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sudoku-arena/internal/domain"
)

// Message types
const (
	MessageTypeMatchEvent  = "match_event"
	MessageTypeProgress    = "progress"
	MessageTypeStandings   = "standings_update"
	MessageTypeJoinMatch   = "join_match"
	MessageTypeLeaveMatch  = "leave_match"
	MessageTypeSubscribe   = "subscribe_standings"
	MessageTypeUnsubscribe = "unsubscribe_standings"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeError       = "error"
)

// Message represents a WebSocket message
type Message struct {
	Type      string      `json:"type"`
	MatchID   int64       `json:"match_id,omitempty"`
	Period    string      `json:"period,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ProgressUpdate is relayed between live-match opponents
type ProgressUpdate struct {
	PlayerID       int64  `json:"player_id"`
	Username       string `json:"username"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// StandingsUpdate carries refreshed realtime standings for broadcast
type StandingsUpdate struct {
	Period  domain.Period          `json:"period"`
	Entries []domain.RealtimeEntry `json:"entries"`
}

func matchRoom(matchID int64) string {
	return fmt.Sprintf("match:%d", matchID)
}

func standingsRoom(period domain.Period) string {
	return fmt.Sprintf("standings:%s", period)
}

type roomRequest struct {
	client *Client
	room   string
}

type outbound struct {
	room    string
	exclude int64 // player id to skip, 0 for none
	data    []byte
}

// Hub routes messages between connected players. It keeps an ephemeral
// per-process registry of player connections and room membership with an
// explicit register/deregister lifecycle; nothing here is persisted, and
// a disconnect simply drops the player from every room.
type Hub struct {
	// Connection registry by player ID; a reconnect replaces the old entry
	registry map[int64]*Client

	// Room membership
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan *roomRequest
	leave      chan *roomRequest
	broadcast  chan *outbound

	mu     sync.RWMutex
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:   make(map[int64]*Client),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *roomRequest, 64),
		leave:      make(chan *roomRequest, 64),
		broadcast:  make(chan *outbound, 256),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("WebSocket hub stopping")
			return

		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.registry[client.player.ID]; ok && old != client {
				h.dropLocked(old)
			}
			h.registry[client.player.ID] = client
			h.mu.Unlock()
			h.logger.Debug("client registered", "player_id", client.player.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if h.registry[client.player.ID] == client {
				delete(h.registry, client.player.ID)
			}
			h.dropLocked(client)
			h.mu.Unlock()
			h.logger.Debug("client unregistered", "player_id", client.player.ID)

		case req := <-h.join:
			h.mu.Lock()
			if _, ok := h.rooms[req.room]; !ok {
				h.rooms[req.room] = make(map[*Client]bool)
			}
			h.rooms[req.room][req.client] = true
			h.mu.Unlock()
			h.logger.Debug("client joined room", "player_id", req.client.player.ID, "room", req.room)

		case req := <-h.leave:
			h.mu.Lock()
			h.removeFromRoomLocked(req.client, req.room)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Stop stops the hub
func (h *Hub) Stop() {
	h.cancel()
}

// dropLocked removes a client from every room and closes its send
// channel. Caller holds h.mu.
func (h *Hub) dropLocked(client *Client) {
	for room := range h.rooms {
		h.removeFromRoomLocked(client, room)
	}
	select {
	case <-client.done:
	default:
		close(client.done)
	}
}

func (h *Hub) removeFromRoomLocked(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// deliver sends a marshaled message to every room member, skipping the
// excluded player
func (h *Hub) deliver(msg *outbound) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[msg.room]
	if !ok {
		return
	}
	for client := range members {
		if msg.exclude != 0 && client.player.ID == msg.exclude {
			continue
		}
		select {
		case client.send <- msg.data:
		default:
			// Client's buffer is full, skip
			h.logger.Warn("client buffer full, skipping", "player_id", client.player.ID)
		}
	}
}

func (h *Hub) enqueue(msg *outbound) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast channel full, dropping message")
	}
}

// BroadcastMatchEvent sends a match lifecycle event to the match room.
func (h *Hub) BroadcastMatchEvent(matchID int64, event string, data interface{}) {
	payload, err := json.Marshal(Message{
		Type:      MessageTypeMatchEvent,
		MatchID:   matchID,
		Data:      map[string]interface{}{"event": event, "detail": data},
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to marshal match event", "error", err)
		return
	}
	h.enqueue(&outbound{room: matchRoom(matchID), data: payload})
}

// RelayProgress forwards one side's elapsed time to the other room members.
func (h *Hub) RelayProgress(matchID int64, from domain.PlayerInfo, elapsedSeconds int) {
	payload, err := json.Marshal(Message{
		Type:    MessageTypeProgress,
		MatchID: matchID,
		Data: ProgressUpdate{
			PlayerID:       from.ID,
			Username:       from.Username,
			ElapsedSeconds: elapsedSeconds,
		},
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}
	h.enqueue(&outbound{room: matchRoom(matchID), exclude: from.ID, data: payload})
}

// BroadcastStandings sends refreshed realtime standings to subscribers
// of the period.
func (h *Hub) BroadcastStandings(period domain.Period, entries []domain.RealtimeEntry) {
	payload, err := json.Marshal(Message{
		Type:      MessageTypeStandings,
		Period:    string(period),
		Data:      StandingsUpdate{Period: period, Entries: entries},
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to marshal standings update", "error", err)
		return
	}
	h.enqueue(&outbound{room: standingsRoom(period), data: payload})
}

// SendToPlayer delivers a message directly to one connected player.
// Best effort: disconnected players are skipped.
func (h *Hub) SendToPlayer(playerID int64, msg Message) {
	msg.Timestamp = time.Now()
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	client, ok := h.registry[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case client.send <- payload:
	default:
		h.logger.Warn("client buffer full, skipping", "player_id", playerID)
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client from the hub. Returns immediately once
// the hub has stopped so pump goroutines never block on shutdown.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// JoinRoom subscribes a client to a room
func (h *Hub) JoinRoom(client *Client, room string) {
	select {
	case h.join <- &roomRequest{client: client, room: room}:
	case <-h.ctx.Done():
	}
}

// LeaveRoom unsubscribes a client from a room
func (h *Hub) LeaveRoom(client *Client, room string) {
	select {
	case h.leave <- &roomRequest{client: client, room: room}:
	case <-h.ctx.Done():
	}
}

// GetTotalConnections returns the number of connected players
func (h *Hub) GetTotalConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.registry)
}

// GetRoomSize returns the number of clients in a room
func (h *Hub) GetRoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
