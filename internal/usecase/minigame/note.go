package usecase_minigame

import (
	"math/rand"
	"time"

	"github.com/mustachio/server/internal/model"
)

const (
	// noteVotingWindow is how long the blind voting phase stays open.
	noteVotingWindow = 8 * time.Second
	// noteRevealPause shows the chosen note to the voters before the
	// guesser opens their eyes.
	noteRevealPause = 2 * time.Second

	noteGuessRight = 4 // distributed on a correct guess
	noteGuessWrong = 2 // drunk on a miss
)

// noteEngine: everyone but the active player votes a note 1–10; the
// plurality becomes the secret; the active player then guesses it.
type noteEngine struct{}

func (noteEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game: model.GameNote,
		Note: &model.NoteState{
			Step:  "voting",
			Votes: make(map[string]model.NoteVote),
		},
	}
	return []FollowUp{{After: noteVotingWindow, Event: Event{Type: eventNoteClose}}}
}

func (noteEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Note
	active := r.CurrentPlayerID()

	switch ev.Type {
	case EventCastNote:
		if ev.Actor == active {
			return nil, ErrNotAllowed
		}
		if st.Step != "voting" {
			return nil, errStale
		}
		if ev.Note < 1 || ev.Note > 10 {
			return nil, ErrInvalidEvent
		}
		st.Votes[ev.Actor] = model.NoteVote{
			Note: ev.Note,
			Name: playerName(r, ev.Actor),
		}
		return nil, nil

	case eventNoteClose:
		if st.Step != "voting" {
			return nil, errStale
		}
		st.Step = "revealing"
		st.WinningNote = winningNote(r.Order, st.Votes)
		return []FollowUp{{After: noteRevealPause, Event: Event{Type: eventNoteGuessOpen}}}, nil

	case eventNoteGuessOpen:
		if st.Step != "revealing" {
			return nil, errStale
		}
		st.Step = "guessing"
		return nil, nil

	case EventGuessNote:
		if ev.Actor != active {
			return nil, ErrNotAllowed
		}
		if st.Step != "guessing" {
			return nil, errStale
		}
		if ev.Note < 1 || ev.Note > 10 {
			return nil, ErrInvalidEvent
		}
		st.Step = "finished"
		st.Result = &model.NoteResult{
			Correct: ev.Note == st.WinningNote,
			Guess:   ev.Note,
		}
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

// winningNote picks the plurality vote, first value to reach the top count
// winning ties, voters walked in turn order so the tie-break is stable. With
// no votes at all, a uniform random note stands in.
func winningNote(order []string, votes map[string]model.NoteVote) int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, pid := range order {
		v, ok := votes[pid]
		if !ok {
			continue
		}
		counts[v.Note]++
		if counts[v.Note] > bestCount {
			bestCount = counts[v.Note]
			best = v.Note
		}
	}
	if best == 0 {
		best = rand.Intn(10) + 1
	}
	return best
}

// NoteSips returns (distributed, drunk) for a finished note game.
func NoteSips(correct bool) (give int, drink int) {
	if correct {
		return noteGuessRight, 0
	}
	return 0, noteGuessWrong
}
