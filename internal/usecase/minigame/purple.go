package usecase_minigame

import (
	"github.com/mustachio/server/internal/deck"
	"github.com/mustachio/server/internal/model"
)

// purpleEngine: a four-step card ladder (color, higher/lower, inside/outside,
// suit) played by one player at a time. A wrong guess at step n costs n+1
// sips. Once a player clears or busts step 4 they hand over to the next
// player in order until everyone has had a run.
type purpleEngine struct{}

func (purpleEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GamePurple,
		Purple: &model.PurpleState{
			Step:          0,
			CurrentPlayer: r.CurrentPlayerID(),
		},
	}
	return nil
}

func (purpleEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Purple

	switch ev.Type {
	case EventPurpleGuess:
		if ev.Actor != st.CurrentPlayer {
			return nil, ErrNotAllowed
		}
		if st.Step < 0 || st.Step > 3 {
			return nil, errStale
		}
		if !validPurpleGuess(st.Step, ev.Guess) {
			return nil, ErrInvalidEvent
		}
		card := deck.Draw()
		won := purpleOutcome(st, card, ev.Guess)
		st.Cards = append(st.Cards, card)
		res := &model.PurpleResult{Won: won, Player: playerName(r, ev.Actor)}
		if !won {
			res.Sips = st.Step + 1
		}
		st.LastResult = res
		st.Step++
		return nil, nil

	case EventPurpleNext:
		if ev.Actor != st.CurrentPlayer {
			return nil, ErrNotAllowed
		}
		if st.Step != 4 {
			return nil, errStale
		}
		if len(st.PlayersDone)+1 < len(r.Order) {
			st.PlayersDone = append(st.PlayersDone, st.CurrentPlayer)
			st.CurrentPlayer = nextInOrder(r, st.CurrentPlayer)
			st.Step = 0
			st.Cards = nil
			st.LastResult = nil
		} else {
			st.PlayersDone = append(st.PlayersDone, st.CurrentPlayer)
			st.Step = -1
		}
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

func validPurpleGuess(step int, guess string) bool {
	switch step {
	case 0:
		return guess == "red" || guess == "black"
	case 1:
		return guess == "more" || guess == "less"
	case 2:
		return guess == "in" || guess == "out"
	case 3:
		for _, s := range model.Suits {
			if guess == string(s) {
				return true
			}
		}
	}
	return false
}

func purpleOutcome(st *model.PurpleState, card model.Card, guess string) bool {
	switch st.Step {
	case 0:
		if guess == "red" {
			return card.Suit.IsRed()
		}
		return !card.Suit.IsRed()
	case 1:
		prev := deck.ValueRank(st.Cards[0].Value)
		cur := deck.ValueRank(card.Value)
		// An exact match counts as a win either way.
		if cur == prev {
			return true
		}
		if guess == "more" {
			return cur > prev
		}
		return cur < prev
	case 2:
		a := deck.ValueRank(st.Cards[0].Value)
		b := deck.ValueRank(st.Cards[1].Value)
		if a > b {
			a, b = b, a
		}
		cur := deck.ValueRank(card.Value)
		inside := cur > a && cur < b
		if guess == "in" {
			return inside
		}
		return !inside
	case 3:
		return string(card.Suit) == guess
	}
	return false
}
