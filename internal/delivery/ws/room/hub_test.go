package ws_room

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	store_memory "github.com/mustachio/server/internal/store/memory"
	usecase_room "github.com/mustachio/server/internal/usecase/room"
)

func TestRegisterClientDeliversSnapshotFirst(t *testing.T) {
	usecase := usecase_room.New(store_memory.New())
	h := NewHub(usecase)

	code, hostID, err := usecase.Create(context.Background(), "Alice")
	require.NoError(t, err)

	client := &Client{
		Send:     make(chan []byte, 8),
		RoomCode: code,
		PlayerID: hostID,
	}
	require.NoError(t, h.RegisterClient(client))

	var msg Message
	require.NoError(t, json.Unmarshal(<-client.Send, &msg))
	assert.Equal(t, MessageSnapshot, msg.Type)
	require.NotNil(t, msg.Payload)
	assert.Equal(t, code, msg.Payload.Code)
}

func TestRegisterClientUnknownRoom(t *testing.T) {
	h := NewHub(usecase_room.New(store_memory.New()))

	client := &Client{Send: make(chan []byte, 1), RoomCode: "NOROOM"}
	err := h.RegisterClient(client)
	assert.Error(t, err)

	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.Empty(t, h.rooms)
}

func TestBroadcastEvictsSlowClient(t *testing.T) {
	h := NewHub(nil)

	fast := &Client{Send: make(chan []byte, 128), RoomCode: "ABCDEF"}
	slow := &Client{Send: make(chan []byte), RoomCode: "ABCDEF"}
	h.rooms["ABCDEF"] = &feed{clients: map[*Client]bool{fast: true, slow: true}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				h.broadcastToRoom("ABCDEF", Message{Type: MessageSnapshot})
			}
		}()
	}
	wg.Wait()

	h.mu.RLock()
	f := h.rooms["ABCDEF"]
	assert.True(t, f.clients[fast])
	assert.False(t, f.clients[slow])
	h.mu.RUnlock()

	_, open := <-slow.Send
	assert.False(t, open)
	assert.NotEmpty(t, fast.Send)
}
