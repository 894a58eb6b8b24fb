package usecase_minigame

import "github.com/mustachio/server/internal/model"

// EventType discriminates the mini-game events. Player-facing events come in
// through the HTTP delivery; "tick" events are synthesized by the scheduler
// and carry an empty actor.
type EventType string

const (
	// 3-3-3
	EventStartTimer    EventType = "start_timer"
	EventValidateTimer EventType = "validate_timer"
	eventTimerExpired  EventType = "timer_expired"

	// duel
	EventSelectOpponent EventType = "select_opponent"
	EventRollDie        EventType = "roll_die"

	// finger lotto
	EventPlaceBet    EventType = "place_bet"
	EventCastFingers EventType = "cast_fingers"

	// note
	EventCastNote      EventType = "cast_note"
	EventGuessNote     EventType = "guess_note"
	eventNoteClose     EventType = "note_close"
	eventNoteGuessOpen EventType = "note_guess_open"

	// trinquette
	EventRollDice EventType = "roll_dice"
	EventAnnounce EventType = "announce"
	EventAccept   EventType = "accept"
	EventCallLiar EventType = "call_liar"

	// purple
	EventPurpleGuess EventType = "purple_guess"
	EventPurpleNext  EventType = "purple_next"

	// six time
	EventToggleReady EventType = "toggle_ready"
	EventStopClock   EventType = "stop_clock"
	eventSixTimeGo   EventType = "six_time_go"
	eventSixTimeDone EventType = "six_time_done"

	// pmu
	EventPlaceRaceBet EventType = "place_race_bet"
	eventRaceStart    EventType = "race_start"
	eventRaceTick     EventType = "race_tick"

	// cupid
	EventChooseLovers EventType = "choose_lovers"
)

// Event is one intent against the active mini-game. It is a flat union: each
// engine reads only the fields its event types define.
type Event struct {
	Type  EventType `json:"type" binding:"required"`
	Actor string    `json:"-"`

	Opponent string     `json:"opponent,omitempty"`
	Fingers  *int       `json:"fingers,omitempty"`
	Note     int        `json:"note,omitempty"`
	Guess    string     `json:"guess,omitempty"`
	BetType  string     `json:"betType,omitempty"`
	BetValue int        `json:"betValue,omitempty"`
	Suit     model.Suit `json:"suit,omitempty"`
	Sips     int        `json:"sips,omitempty"`
	Targets  []string   `json:"targets,omitempty"`
}

// system reports whether the event was synthesized by the scheduler rather
// than sent by a participant.
func (e Event) system() bool {
	return e.Actor == ""
}
