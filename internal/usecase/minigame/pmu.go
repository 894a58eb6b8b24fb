package usecase_minigame

import (
	"time"

	"github.com/mustachio/server/internal/deck"
	"github.com/mustachio/server/internal/model"
)

const (
	raceTrackLength  = 6
	raceStartDelay   = time.Second
	raceTickInterval = 2500 * time.Millisecond
	racePenaltyPause = 4 * time.Second
)

// pmuEngine: a horse race between the four suit aces. Players bet sips on a
// suit, then the room draws cards on a shared clock; each draw advances that
// suit's ace one step. Five flipped penalty cards line the track: when every
// ace has passed a milestone, the penalty card there is revealed and knocks
// its suit back one step. First ace to cross the finish wins; backers of the
// winner hand out their stake, everyone else drinks their own.
type pmuEngine struct{}

func (pmuEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GamePMU,
		PMU: &model.PMUState{
			Step: "betting",
			Bets: map[string]model.PMUBet{},
		},
	}
	return nil
}

func (pmuEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.PMU

	switch ev.Type {
	case EventPlaceRaceBet:
		if !inOrder(r, ev.Actor) || !r.HasPlayer(ev.Actor) {
			return nil, ErrNotAllowed
		}
		if st.Step != "betting" {
			return nil, errStale
		}
		if _, placed := st.Bets[ev.Actor]; placed {
			return nil, errStale
		}
		if !validSuit(ev.Suit) || ev.Sips < 1 || ev.Sips > 10 {
			return nil, ErrInvalidEvent
		}
		st.Bets[ev.Actor] = model.PMUBet{
			Suit: ev.Suit,
			Sips: ev.Sips,
			Name: playerName(r, ev.Actor),
		}
		for _, id := range presentInOrder(r) {
			if _, placed := st.Bets[id]; !placed {
				return nil, nil
			}
		}
		return []FollowUp{{After: raceStartDelay, Event: Event{Type: eventRaceStart}}}, nil

	case eventRaceStart:
		if st.Step != "betting" {
			return nil, errStale
		}
		st.Step = "racing"
		st.Positions = map[model.Suit]int{}
		for _, s := range model.Suits {
			st.Positions[s] = 0
		}
		st.PenaltyCards = map[int]model.Card{}
		for m := 1; m < raceTrackLength; m++ {
			st.PenaltyCards[m] = deck.Draw()
		}
		return []FollowUp{{After: raceTickInterval, Event: Event{Type: eventRaceTick}}}, nil

	case eventRaceTick:
		if st.Step != "racing" || st.Winner != "" {
			return nil, errStale
		}
		// A revealed penalty card pauses the race for one beat; the next
		// tick clears it before drawing again.
		if st.ActivePenaltyCard != nil {
			st.ActivePenaltyCard = nil
			return []FollowUp{{After: raceTickInterval, Event: Event{Type: eventRaceTick}}}, nil
		}
		card := deck.Draw()
		st.DrawnCards = append(st.DrawnCards, card)
		st.Positions[card.Suit]++

		penalty := false
		for m := 1; m < raceTrackLength; m++ {
			if milestoneRevealed(st, m) {
				continue
			}
			passed := true
			for _, s := range model.Suits {
				if st.Positions[s] < m {
					passed = false
					break
				}
			}
			if !passed {
				continue
			}
			pc := st.PenaltyCards[m]
			st.RevealedMilestones = append(st.RevealedMilestones, m)
			if st.Positions[pc.Suit] > 0 {
				st.Positions[pc.Suit]--
			}
			st.ActivePenaltyCard = &pc
			penalty = true
			break
		}

		if st.Positions[card.Suit] >= raceTrackLength {
			st.Winner = card.Suit
			st.Step = "finished"
			return nil, nil
		}
		delay := raceTickInterval
		if penalty {
			delay = racePenaltyPause
		}
		return []FollowUp{{After: delay, Event: Event{Type: eventRaceTick}}}, nil

	default:
		return nil, ErrInvalidEvent
	}
}

func milestoneRevealed(st *model.PMUState, m int) bool {
	for _, r := range st.RevealedMilestones {
		if r == m {
			return true
		}
	}
	return false
}

func validSuit(s model.Suit) bool {
	for _, suit := range model.Suits {
		if s == suit {
			return true
		}
	}
	return false
}

// PMUPayout tells a bettor what their stake is worth once the race ends:
// winners distribute their bet, losers drink it themselves.
func PMUPayout(bet model.PMUBet, winner model.Suit) (sips int, give bool) {
	if bet.Suit == winner {
		return bet.Sips, true
	}
	return bet.Sips, false
}
