package model

// RoomStatus is the lifecycle stage of a room.
type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// MaxPlayers is the hard cap on participants per room.
const MaxPlayers = 10

// Player is one connected participant within a room.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	Avatar   int    `json:"avatar"`
	JoinedAt int64  `json:"joinedAt"`
}

// Lover is one half of the pair bound by Cupidon.
type Lover struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room is the single shared mutable record of a game session. Every client
// mirrors it through the store's subscription channel; all coordination
// happens through mutations of this document.
type Room struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Status    RoomStatus `json:"status"`
	HostID    string     `json:"hostId"`
	CreatedAt int64      `json:"createdAt"`
	EndedAt   int64      `json:"endedAt,omitempty"`

	Players map[string]Player `json:"players"`

	// Order is fixed once at game start and never repaired afterwards:
	// a player who leaves stays in Order, and the turn engine skips them.
	Order            []string `json:"order,omitempty"`
	CurrentTurnIndex int      `json:"currentTurnIndex"`

	Deck       []Card `json:"deck,omitempty"`
	ActiveCard *Card  `json:"activeCard,omitempty"`
	LastAction int64  `json:"lastAction,omitempty"`

	MiniGame *MiniGameState `json:"miniGameState,omitempty"`

	// Cross-turn markers. House rules, never computed by the engines.
	Lovers    []Lover `json:"lovers,omitempty"`
	Mustachio string  `json:"mustachio,omitempty"`
}

// CurrentPlayerID returns the id at the current turn index, or "" when the
// order is not set yet.
func (r *Room) CurrentPlayerID() string {
	if len(r.Order) == 0 || r.CurrentTurnIndex >= len(r.Order) {
		return ""
	}
	return r.Order[r.CurrentTurnIndex]
}

// HasPlayer reports whether the participant is still in the player map.
func (r *Room) HasPlayer(id string) bool {
	_, ok := r.Players[id]
	return ok
}
