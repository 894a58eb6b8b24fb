package usecase_minigame

import (
	"fmt"

	"github.com/mustachio/server/internal/model"
)

// trinquetteEngine: the roller throws two dice privately, announces a score
// out loud, and the next player either accepts (and becomes the roller, dice
// stay hidden) or calls liar (dice are revealed). No drink amount is computed
// on a liar call; the table settles it off the revealed score.
type trinquetteEngine struct{}

func (trinquetteEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GameTrinquette,
		Trinquette: &model.TrinquetteState{
			Step:          "rolling",
			CurrentRoller: r.CurrentPlayerID(),
		},
	}
	return nil
}

func (trinquetteEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Trinquette
	decider := nextInOrder(r, st.CurrentRoller)

	switch ev.Type {
	case EventRollDice:
		if ev.Actor != st.CurrentRoller {
			return nil, ErrNotAllowed
		}
		if st.Step != "rolling" {
			return nil, errStale
		}
		st.Dice = &model.Dice{D1: rollDie(), D2: rollDie()}
		st.Step = "announcing"
		return nil, nil

	case EventAnnounce:
		// The announcement itself is oral; this only opens the decision.
		if ev.Actor != st.CurrentRoller {
			return nil, ErrNotAllowed
		}
		if st.Step != "announcing" {
			return nil, errStale
		}
		st.Step = "deciding"
		return nil, nil

	case EventAccept:
		if ev.Actor != decider {
			return nil, ErrNotAllowed
		}
		if st.Step != "deciding" {
			return nil, errStale
		}
		st.Step = "rolling"
		st.CurrentRoller = decider
		st.Dice = nil
		return nil, nil

	case EventCallLiar:
		if ev.Actor != decider {
			return nil, ErrNotAllowed
		}
		if st.Step != "deciding" {
			return nil, errStale
		}
		st.Step = "result"
		st.Decision = "liar"
		st.DeciderID = ev.Actor
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

// FormatTrinquetteScore renders two dice the way the table reads them: faces
// sorted descending as a two-digit number, doubles called out, and 21 as the
// namesake best hand.
func FormatTrinquetteScore(d1, d2 int) string {
	hi, lo := d1, d2
	if lo > hi {
		hi, lo = lo, hi
	}
	val := hi*10 + lo
	if val == 21 {
		return "Trinquette (21)"
	}
	if hi == lo {
		return fmt.Sprintf("Double %d", hi)
	}
	return fmt.Sprintf("%d", val)
}
