package ws_room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mustachio/server/internal/model"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
)

type MessageType string

const (
	// MessageSnapshot carries the full room document on every change.
	MessageSnapshot MessageType = "ROOM_SNAPSHOT"
	// MessageClosed is the terminal message once the room is deleted.
	MessageClosed MessageType = "ROOM_CLOSED"
)

type Message struct {
	Type    MessageType `json:"type"`
	Payload *model.Room `json:"payload,omitempty"`
}

// Client is one websocket connection mirroring a room. PlayerID is empty for
// a connection that watches without sitting at the table.
type Client struct {
	Conn     *websocket.Conn
	Send     chan []byte
	RoomCode string
	PlayerID string
}

// feed is the shared store subscription behind every client of one room.
type feed struct {
	clients     map[*Client]bool
	unsubscribe func()
}

// Hub bridges store subscriptions to websocket clients: one subscription per
// room with at least one client, every snapshot fanned out to all of them.
// A dropped connection counts as the player leaving the room.
type Hub struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger

	mu    sync.RWMutex
	rooms map[string]*feed
}

func NewHub(usecase *usecase_room.Usecase) *Hub {
	return &Hub{
		usecase: usecase,
		logger:  slog.Default(),
		rooms:   make(map[string]*feed),
	}
}

// RegisterClient adds the client to its room's feed, opening the store
// subscription when it is the room's first client. The subscription pushes
// the current snapshot immediately, so a fresh client always gets state
// before the first delta.
func (h *Hub) RegisterClient(client *Client) error {
	h.mu.Lock()
	f, exists := h.rooms[client.RoomCode]
	if !exists {
		f = &feed{clients: make(map[*Client]bool)}
		h.rooms[client.RoomCode] = f
	}
	f.clients[client] = true
	h.mu.Unlock()

	h.logger.Info("client registered",
		"room", client.RoomCode,
		"player_id", client.PlayerID)

	if exists {
		return nil
	}

	code := client.RoomCode
	unsub, err := h.usecase.Subscribe(context.Background(), code, func(room *model.Room) {
		if room == nil {
			h.closeRoom(code)
			return
		}
		h.broadcastToRoom(code, Message{Type: MessageSnapshot, Payload: room})
	})
	if err != nil {
		h.mu.Lock()
		delete(h.rooms, code)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	f.unsubscribe = unsub
	h.mu.Unlock()
	return nil
}

// RemoveClient drops the connection from its feed and, when it was the last
// one, tears the store subscription down.
func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	var unsub func()
	if f, ok := h.rooms[client.RoomCode]; ok {
		if f.clients[client] {
			delete(f.clients, client)
			close(client.Send)
		}
		if len(f.clients) == 0 {
			unsub = f.unsubscribe
			delete(h.rooms, client.RoomCode)
		}
	}
	h.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	h.logger.Info("client unregistered",
		"room", client.RoomCode,
		"player_id", client.PlayerID)
}

func (h *Hub) broadcastToRoom(code string, message Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal room message", "room", code, "error", err)
		return
	}

	// Evicting a slow client mutates the feed, so take the write lock.
	h.mu.Lock()
	defer h.mu.Unlock()

	if f, ok := h.rooms[code]; ok {
		for client := range f.clients {
			select {
			case client.Send <- messageBytes:
			default:
				close(client.Send)
				delete(f.clients, client)
			}
		}
	}
}

// closeRoom sends the terminal message and drops every client of a deleted
// room. The senders' read loops end when the peers close their sockets.
func (h *Hub) closeRoom(code string) {
	messageBytes, _ := json.Marshal(Message{Type: MessageClosed})

	h.mu.Lock()
	f, ok := h.rooms[code]
	if ok {
		delete(h.rooms, code)
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	for client := range f.clients {
		select {
		case client.Send <- messageBytes:
		default:
		}
		close(client.Send)
	}
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
}

// StartClientReading blocks on the socket until it drops, then removes the
// client and, when it was seated, removes the player from the room.
func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
		h.leave(client)
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func (h *Hub) leave(client *Client) {
	if client.PlayerID == "" {
		return
	}
	err := h.usecase.Leave(context.Background(), client.RoomCode, client.PlayerID)
	if err != nil && !errors.Is(err, usecase_room.ErrNotFound) && !errors.Is(err, usecase_room.ErrNotInRoom) {
		h.logger.Error("failed to remove disconnected player",
			"room", client.RoomCode,
			"player_id", client.PlayerID,
			"error", err)
	}
}
