package usecase_minigame

import (
	"time"

	"github.com/mustachio/server/internal/model"
)

// timerWindow is how long the active player gets in the 3-3-3.
const timerWindow = 3000 * time.Millisecond

// timerFailSips is owed when the window expires unvalidated.
const timerFailSips = 3

// timerEngine runs the 3-3-3: the previous player (the judge) gives a theme
// out loud, starts the clock, and either validates a success or lets the
// window expire.
type timerEngine struct{}

func (timerEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game:  model.GameTimer,
		Timer: &model.TimerState{Status: "waiting"},
	}
	return nil
}

func (timerEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Timer

	switch ev.Type {
	case EventStartTimer:
		if ev.Actor != previousPlayerID(r) {
			return nil, ErrNotAllowed
		}
		if st.Status != "waiting" {
			return nil, errStale
		}
		st.Status = "running"
		st.StartTime = nowMs()
		return []FollowUp{{After: timerWindow, Event: Event{Type: eventTimerExpired}}}, nil

	case EventValidateTimer:
		if ev.Actor != previousPlayerID(r) {
			return nil, ErrNotAllowed
		}
		if st.Status != "running" {
			return nil, errStale
		}
		st.Status = "success"
		return nil, nil

	case eventTimerExpired:
		if st.Status != "running" {
			return nil, errStale
		}
		st.Status = "failed"
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

// TimerSips is what the active player owes for a given terminal status.
func TimerSips(status string) int {
	if status == "failed" {
		return timerFailSips
	}
	return 0
}
