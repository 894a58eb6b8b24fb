package usecase_minigame

import (
	"math"
	"time"

	"github.com/mustachio/server/internal/model"
)

const (
	sixTimeCountdown = 4 * time.Second
	sixTimeSettle    = time.Second
)

// sixTimeEngine: everyone readies up, a shared clock starts after a
// countdown, and each player stops their own clock as close to a multiple
// of six seconds as they can. Landing within half a second of a multiple
// hands out sips, missing drinks them.
type sixTimeEngine struct{}

func (sixTimeEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GameSixTime,
		SixTime: &model.SixTimeState{
			State:       "waiting",
			Ready:       map[string]bool{},
			PlayerTimes: map[string]model.SixTimeEntry{},
		},
	}
	return nil
}

func (sixTimeEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.SixTime

	switch ev.Type {
	case EventToggleReady:
		if !inOrder(r, ev.Actor) {
			return nil, ErrNotAllowed
		}
		if st.State != "waiting" {
			return nil, errStale
		}
		if st.Ready[ev.Actor] {
			delete(st.Ready, ev.Actor)
			return nil, nil
		}
		st.Ready[ev.Actor] = true
		for _, id := range presentInOrder(r) {
			if !st.Ready[id] {
				return nil, nil
			}
		}
		st.State = "countdown"
		return []FollowUp{{After: sixTimeCountdown, Event: Event{Type: eventSixTimeGo}}}, nil

	case eventSixTimeGo:
		if st.State != "countdown" {
			return nil, errStale
		}
		st.State = "running"
		st.StartTime = nowMs()
		return nil, nil

	case EventStopClock:
		if !inOrder(r, ev.Actor) {
			return nil, ErrNotAllowed
		}
		if st.State != "running" {
			return nil, errStale
		}
		if _, done := st.PlayerTimes[ev.Actor]; done {
			return nil, errStale
		}
		elapsed := float64(nowMs()-st.StartTime) / 1000.0
		st.PlayerTimes[ev.Actor] = model.SixTimeEntry{
			Time: elapsed,
			Name: playerName(r, ev.Actor),
		}
		for _, id := range presentInOrder(r) {
			if _, done := st.PlayerTimes[id]; !done {
				return nil, nil
			}
		}
		return []FollowUp{{After: sixTimeSettle, Event: Event{Type: eventSixTimeDone}}}, nil

	case eventSixTimeDone:
		if st.State != "running" {
			return nil, errStale
		}
		st.State = "finished"
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

// SixTimeSips scores a stopped clock: the stake grows with how long the
// player dared to wait, and landing within 0.5s of a multiple of six means
// they give the sips instead of drinking them.
func SixTimeSips(t float64) (sips int, give bool) {
	switch {
	case t < 9:
		sips = 1
	case t < 15:
		sips = 2
	case t < 21:
		sips = 3
	case t < 27:
		sips = 4
	case t < 33:
		sips = 5
	default:
		sips = 6
	}
	rem := math.Mod(t, 6)
	give = math.Min(rem, 6-rem) <= 0.5
	return sips, give
}

func inOrder(r *model.Room, id string) bool {
	for _, o := range r.Order {
		if o == id {
			return true
		}
	}
	return false
}
