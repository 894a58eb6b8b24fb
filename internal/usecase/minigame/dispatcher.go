package usecase_minigame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mustachio/server/internal/deck"
	"github.com/mustachio/server/internal/model"
	"github.com/mustachio/server/internal/store"
)

var (
	ErrNotFound     = errors.New("no such room")
	ErrNotPlaying   = errors.New("game is not in progress")
	ErrNoActiveCard = errors.New("no card revealed")
	ErrNoSuchGame   = errors.New("active card has no interactive game")
	ErrNotAllowed   = errors.New("event not allowed for this player")
	ErrInvalidEvent = errors.New("invalid event")
	ErrInternal     = errors.New("internal error")

	// errStale marks a late or duplicate event against a state that already
	// moved on. Swallowed: the mutation is aborted and the current snapshot
	// returned unchanged.
	errStale = errors.New("stale event")
)

// FollowUp is a deferred event an engine wants fed back to itself, e.g. a
// voting deadline or the next race tick.
type FollowUp struct {
	After time.Duration
	Event Event
}

// engine is one mini-game state machine: a reducer over the room's tagged
// sub-state. init seeds the state when a card is revealed; apply folds one
// event in. Both may return follow-ups to schedule.
type engine interface {
	init(r *model.Room) []FollowUp
	apply(r *model.Room, ev Event) ([]FollowUp, error)
}

// engines keyed by mini-game. Ranks without an entry (A, 8, 9, K) are
// display-only rules with no interactive sub-state.
var engines = map[model.MiniGameID]engine{
	model.GameTimer:       timerEngine{},
	model.GameDuel:        duelEngine{},
	model.GameTrinquette:  trinquetteEngine{},
	model.GamePurple:      purpleEngine{},
	model.GameSixTime:     sixTimeEngine{},
	model.GameFingerLotto: lottoEngine{},
	model.GameNote:        noteEngine{},
	model.GamePMU:         pmuEngine{},
	model.GameCupid:       cupidEngine{},
}

// Dispatcher routes events to the engine selected by the active card's rank
// and schedules whatever follow-ups the transition produced.
type Dispatcher struct {
	store  store.Store
	sched  *Scheduler
	logger *slog.Logger
}

func NewDispatcher(s store.Store, sched *Scheduler) *Dispatcher {
	return &Dispatcher{
		store:  s,
		sched:  sched,
		logger: slog.Default(),
	}
}

// Handle applies one event to the room's active mini-game.
func (d *Dispatcher) Handle(ctx context.Context, code string, ev Event) (model.Room, error) {
	var followUps []FollowUp

	room, err := d.store.Update(ctx, code, func(r *model.Room) error {
		eng, err := d.gate(r, ev)
		if err != nil {
			return err
		}
		if r.MiniGame == nil || engines[r.MiniGame.Game] != eng {
			followUps = append(followUps, eng.init(r)...)
		}
		fups, err := eng.apply(r, ev)
		if err != nil {
			return err
		}
		followUps = append(followUps, fups...)
		return nil
	})
	if errors.Is(err, errStale) {
		d.logger.Info("ignoring stale mini-game event", "room", code, "event", ev.Type)
		current, getErr := d.store.Get(ctx, code)
		if getErr != nil {
			return model.Room{}, d.mapErr(getErr)
		}
		return current, nil
	}
	if err != nil {
		return model.Room{}, d.mapErr(err)
	}

	d.schedule(code, followUps)
	return room, nil
}

// Prime seeds the mini-game state right after a card is drawn, so waiting
// phases (and their deadlines, like the note voting window) exist before the
// first player event arrives.
func (d *Dispatcher) Prime(ctx context.Context, code string) (model.Room, error) {
	var followUps []FollowUp

	room, err := d.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusPlaying || r.ActiveCard == nil || r.MiniGame != nil {
			return errStale
		}
		eng, ok := engines[deck.GameForValue(r.ActiveCard.Value)]
		if !ok {
			return errStale
		}
		followUps = eng.init(r)
		return nil
	})
	if errors.Is(err, errStale) {
		current, getErr := d.store.Get(ctx, code)
		if getErr != nil {
			return model.Room{}, d.mapErr(getErr)
		}
		return current, nil
	}
	if err != nil {
		return model.Room{}, d.mapErr(err)
	}

	d.schedule(code, followUps)
	return room, nil
}

// Rule returns the display rule for the room's active card.
func (d *Dispatcher) Rule(ctx context.Context, code string) (Rule, error) {
	room, err := d.store.Get(ctx, code)
	if err != nil {
		return Rule{}, d.mapErr(err)
	}
	if room.ActiveCard == nil {
		return Rule{}, ErrNoActiveCard
	}
	rule, ok := RuleFor(deck.GameForValue(room.ActiveCard.Value))
	if !ok {
		return Rule{}, ErrNoSuchGame
	}
	return rule, nil
}

// CancelRoom drops every pending timer for the room. Called when a turn ends
// or a new card is drawn; a timer that slips through is rejected as stale.
func (d *Dispatcher) CancelRoom(code string) {
	d.sched.CancelRoom(code)
}

func (d *Dispatcher) gate(r *model.Room, ev Event) (engine, error) {
	if r.Status != model.StatusPlaying {
		if ev.system() {
			return nil, errStale
		}
		return nil, ErrNotPlaying
	}
	if r.ActiveCard == nil {
		if ev.system() {
			return nil, errStale
		}
		return nil, ErrNoActiveCard
	}

	game := deck.GameForValue(r.ActiveCard.Value)
	eng, ok := engines[game]
	if !ok {
		return nil, ErrNoSuchGame
	}
	if !ev.system() && !r.HasPlayer(ev.Actor) {
		return nil, ErrNotAllowed
	}
	return eng, nil
}

func (d *Dispatcher) schedule(code string, fups []FollowUp) {
	for _, f := range fups {
		f := f
		d.sched.After(code, f.Event.Type, f.After, func() {
			if _, err := d.Handle(context.Background(), code, f.Event); err != nil {
				d.logger.Error("scheduled mini-game event failed",
					"room", code, "event", f.Event.Type, "error", err)
			}
		})
	}
}

func (d *Dispatcher) mapErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrNotPlaying),
		errors.Is(err, ErrNoActiveCard),
		errors.Is(err, ErrNoSuchGame),
		errors.Is(err, ErrNotAllowed),
		errors.Is(err, ErrInvalidEvent):
		return err
	default:
		return fmt.Errorf("%w : %w", ErrInternal, err)
	}
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
