package usecase_turn

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mustachio/server/internal/deck"
	"github.com/mustachio/server/internal/model"
	"github.com/mustachio/server/internal/store"
)

var (
	ErrNotFound    = errors.New("no such room")
	ErrNotHost     = errors.New("only the host can start the game")
	ErrNotEnough   = errors.New("need at least two players")
	ErrNotYourTurn = errors.New("not your turn")
	ErrCardPending = errors.New("a card is already revealed")
	ErrNotPlaying  = errors.New("game is not in progress")
	ErrInternal    = errors.New("internal error")
)

const minPlayers = 2

// Usecase owns the room-level state machine: waiting → playing → finished,
// turn advancement and card draws. Mini-game dispatch happens off the
// ActiveCard it prepares; it never runs mini-game logic itself.
type Usecase struct {
	store store.Store
}

func New(s store.Store) *Usecase {
	return &Usecase{store: s}
}

// Start fixes the turn order, shuffles a fresh deck and moves the room to
// playing. Host-only, two players minimum.
func (u *Usecase) Start(ctx context.Context, code, playerID string) (model.Room, error) {
	room, err := u.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusWaiting {
			return ErrNotPlaying
		}
		if r.HostID != playerID {
			return ErrNotHost
		}
		if len(r.Players) < minPlayers {
			return ErrNotEnough
		}

		r.Status = model.StatusPlaying
		r.Deck = deck.Generate()
		r.Order = joinOrder(r.Players)
		r.CurrentTurnIndex = 0
		r.ActiveCard = nil
		r.MiniGame = nil
		return nil
	})
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	return room, nil
}

// Draw pops one card from the deck's tail for the current player. An empty
// deck is the sole game-ending condition: it flips the room to finished
// instead of revealing a card.
func (u *Usecase) Draw(ctx context.Context, code, playerID string) (model.Room, error) {
	room, err := u.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusPlaying {
			return ErrNotPlaying
		}
		if r.CurrentPlayerID() != playerID {
			return ErrNotYourTurn
		}
		if r.ActiveCard != nil {
			return ErrCardPending
		}

		if len(r.Deck) == 0 {
			r.Status = model.StatusFinished
			r.ActiveCard = nil
			r.MiniGame = nil
			r.EndedAt = time.Now().UnixMilli()
			return nil
		}

		card := r.Deck[len(r.Deck)-1]
		r.Deck = r.Deck[:len(r.Deck)-1]
		r.ActiveCard = &card
		r.MiniGame = nil
		r.LastAction = time.Now().UnixMilli()

		// The King crowns its drawer.
		if card.Value == "K" {
			r.Mustachio = playerID
		}
		return nil
	})
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	return room, nil
}

// EndTurn clears the revealed card and mini-game state and advances to the
// next present player.
func (u *Usecase) EndTurn(ctx context.Context, code, playerID string) (model.Room, error) {
	room, err := u.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusPlaying {
			return ErrNotPlaying
		}
		if !canEndTurn(r, playerID) {
			return ErrNotYourTurn
		}

		r.ActiveCard = nil
		r.MiniGame = nil
		r.CurrentTurnIndex = (r.CurrentTurnIndex + 1) % len(r.Order)
		r.LastAction = time.Now().UnixMilli()

		SkipAbsent(r)
		return nil
	})
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	return room, nil
}

// canEndTurn keeps end-turn gated to the active player, with one exception:
// after a Trinquette "liar" reveal the caller of the bluff holds the finish
// control, whoever's turn it formally is.
func canEndTurn(r *model.Room, playerID string) bool {
	if r.CurrentPlayerID() == playerID {
		return true
	}
	mg := r.MiniGame
	return mg != nil && mg.Game == model.GameTrinquette && mg.Trinquette != nil &&
		mg.Trinquette.Step == "result" && mg.Trinquette.DeciderID == playerID
}

func (u *Usecase) mapErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrNotHost),
		errors.Is(err, ErrNotEnough),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrCardPending),
		errors.Is(err, ErrNotPlaying):
		return err
	default:
		return fmt.Errorf("%w : %w", ErrInternal, err)
	}
}

// SkipAbsent advances the turn past players who are still in Order but gone
// from the player map. Order is never repaired after game start, so this has
// to run after every state change, not just after a leave.
func SkipAbsent(r *model.Room) {
	if r.Status != model.StatusPlaying || len(r.Order) == 0 {
		return
	}

	for range r.Order {
		if r.HasPlayer(r.CurrentPlayerID()) {
			return
		}
		r.ActiveCard = nil
		r.MiniGame = nil
		r.CurrentTurnIndex = (r.CurrentTurnIndex + 1) % len(r.Order)
	}
}

// joinOrder captures the turn order once, at game start: players sorted by
// the moment they joined, ids breaking the (unlikely) ties.
func joinOrder(players map[string]model.Player) []string {
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := players[ids[i]], players[ids[j]]
		if a.JoinedAt != b.JoinedAt {
			return a.JoinedAt < b.JoinedAt
		}
		return a.ID < b.ID
	})
	return ids
}
