package usecase_minigame

import "github.com/mustachio/server/internal/model"

// duelEngine: the active player picks an opponent, both roll one die, the
// lower roll drinks the difference. A tie means both drink the tied value.
type duelEngine struct{}

func (duelEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GameDuel,
		Duel: &model.DuelState{Step: "selecting"},
	}
	return nil
}

func (duelEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Duel
	active := r.CurrentPlayerID()

	switch ev.Type {
	case EventSelectOpponent:
		if ev.Actor != active {
			return nil, ErrNotAllowed
		}
		if st.Step != "selecting" {
			return nil, errStale
		}
		if ev.Opponent == active || !r.HasPlayer(ev.Opponent) {
			return nil, ErrInvalidEvent
		}
		st.Step = "rolling"
		st.OpponentID = ev.Opponent
		st.Rolls = make(map[string]model.DuelRoll)
		return nil, nil

	case EventRollDie:
		if st.Step != "rolling" {
			return nil, errStale
		}
		if ev.Actor != active && ev.Actor != st.OpponentID {
			return nil, ErrNotAllowed
		}
		if _, rolled := st.Rolls[ev.Actor]; rolled {
			return nil, errStale
		}
		st.Rolls[ev.Actor] = model.DuelRoll{
			Value: rollDie(),
			Name:  playerName(r, ev.Actor),
		}

		activeRoll, activeDone := st.Rolls[active]
		oppRoll, oppDone := st.Rolls[st.OpponentID]
		if activeDone && oppDone {
			st.Step = "result"
			st.Result = resolveDuel(active, st.OpponentID, activeRoll.Value, oppRoll.Value)
		}
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

// resolveDuel computes the duel outcome from the two rolls.
func resolveDuel(activeID, opponentID string, activeRoll, opponentRoll int) *model.DuelResult {
	res := &model.DuelResult{
		ActiveRoll:   activeRoll,
		OpponentRoll: opponentRoll,
	}
	switch {
	case activeRoll < opponentRoll:
		res.Loser = activeID
		res.Diff = opponentRoll - activeRoll
		res.Sips = res.Diff
	case opponentRoll < activeRoll:
		res.Loser = opponentID
		res.Diff = activeRoll - opponentRoll
		res.Sips = res.Diff
	default:
		res.Loser = "both"
		res.Sips = activeRoll
	}
	return res
}
