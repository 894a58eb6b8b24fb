package usecase_minigame

import (
	"github.com/mustachio/server/internal/model"
)

// cupidEngine: the active player binds two other players as lovers. Lovers
// drink together for the rest of the game, so the pairing is stored on the
// room itself and outlives the turn.
type cupidEngine struct{}

func (cupidEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game:  model.GameCupid,
		Cupid: &model.CupidState{Step: "selecting"},
	}
	return nil
}

func (cupidEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Cupid

	switch ev.Type {
	case EventChooseLovers:
		if ev.Actor != r.CurrentPlayerID() {
			return nil, ErrNotAllowed
		}
		if st.Step != "selecting" {
			return nil, errStale
		}
		if len(ev.Targets) != 2 || ev.Targets[0] == ev.Targets[1] {
			return nil, ErrInvalidEvent
		}
		for _, id := range ev.Targets {
			if id == ev.Actor || !r.HasPlayer(id) {
				return nil, ErrInvalidEvent
			}
		}
		pair := []model.Lover{
			{ID: ev.Targets[0], Name: playerName(r, ev.Targets[0])},
			{ID: ev.Targets[1], Name: playerName(r, ev.Targets[1])},
		}
		st.Lovers = pair
		st.Step = "finished"
		// A new pairing dissolves the previous one.
		r.Lovers = pair
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}
