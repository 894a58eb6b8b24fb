package usecase_minigame

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustachio/server/internal/model"
	store_memory "github.com/mustachio/server/internal/store/memory"
)

func ptr(n int) *int { return &n }

// playingRoom seeds a three-player room mid-game with the given card revealed.
func playingRoom(t *testing.T, s *store_memory.Store, cardValue string) string {
	t.Helper()

	room := model.Room{
		Code:   "TEST42",
		Status: model.StatusPlaying,
		HostID: "p1",
		Players: map[string]model.Player{
			"p1": {ID: "p1", Name: "Alice", IsHost: true},
			"p2": {ID: "p2", Name: "Bob"},
			"p3": {ID: "p3", Name: "Carol"},
		},
		Order:      []string{"p1", "p2", "p3"},
		ActiveCard: &model.Card{Suit: model.Spades, Value: cardValue},
	}
	require.NoError(t, s.Create(context.Background(), room))
	return room.Code
}

func newDispatcher(s *store_memory.Store) *Dispatcher {
	return NewDispatcher(s, NewScheduler())
}

func TestDispatcherGate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects events while waiting", func(t *testing.T) {
		s := store_memory.New()
		require.NoError(t, s.Create(ctx, model.Room{
			Code:    "WAIT01",
			Status:  model.StatusWaiting,
			Players: map[string]model.Player{"p1": {ID: "p1"}},
		}))
		d := newDispatcher(s)

		_, err := d.Handle(ctx, "WAIT01", Event{Type: EventRollDice, Actor: "p1"})
		assert.ErrorIs(t, err, ErrNotPlaying)
	})

	t.Run("rejects events without a revealed card", func(t *testing.T) {
		s := store_memory.New()
		require.NoError(t, s.Create(ctx, model.Room{
			Code:    "NOCARD",
			Status:  model.StatusPlaying,
			Players: map[string]model.Player{"p1": {ID: "p1"}},
			Order:   []string{"p1"},
		}))
		d := newDispatcher(s)

		_, err := d.Handle(ctx, "NOCARD", Event{Type: EventRollDice, Actor: "p1"})
		assert.ErrorIs(t, err, ErrNoActiveCard)
	})

	t.Run("rule-only cards take no events", func(t *testing.T) {
		s := store_memory.New()
		code := playingRoom(t, s, "8")
		d := newDispatcher(s)

		_, err := d.Handle(ctx, code, Event{Type: EventRollDice, Actor: "p1"})
		assert.ErrorIs(t, err, ErrNoSuchGame)
	})

	t.Run("unknown actors are rejected", func(t *testing.T) {
		s := store_memory.New()
		code := playingRoom(t, s, "2")
		d := newDispatcher(s)

		_, err := d.Handle(ctx, code, Event{Type: EventSelectOpponent, Actor: "ghost", Opponent: "p2"})
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("missing rooms are reported", func(t *testing.T) {
		d := newDispatcher(store_memory.New())
		_, err := d.Handle(ctx, "NOPE", Event{Type: EventRollDice, Actor: "p1"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDispatcherPrime(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "10")
	d := newDispatcher(s)
	defer d.CancelRoom(code)

	room, err := d.Prime(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, room.MiniGame)
	assert.Equal(t, model.GameNote, room.MiniGame.Game)
	assert.Equal(t, "voting", room.MiniGame.Note.Step)

	// Priming again must not reset state.
	again, err := d.Prime(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, room.MiniGame, again.MiniGame)
}

func TestDispatcherRule(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "8")
	d := newDispatcher(s)

	rule, err := d.Rule(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "Medusa", rule.Title)
	assert.False(t, rule.Interactive)

	_, err = s.Update(ctx, code, func(r *model.Room) error {
		r.ActiveCard = nil
		return nil
	})
	require.NoError(t, err)

	_, err = d.Rule(ctx, code)
	assert.ErrorIs(t, err, ErrNoActiveCard)
}

func TestDuelFlow(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "2")
	d := newDispatcher(s)

	room, err := d.Handle(ctx, code, Event{Type: EventSelectOpponent, Actor: "p1", Opponent: "p2"})
	require.NoError(t, err)
	require.NotNil(t, room.MiniGame.Duel)
	assert.Equal(t, "rolling", room.MiniGame.Duel.Step)
	assert.Equal(t, "p2", room.MiniGame.Duel.OpponentID)

	// Bystanders cannot roll in someone else's duel.
	_, err = d.Handle(ctx, code, Event{Type: EventRollDie, Actor: "p3"})
	assert.ErrorIs(t, err, ErrNotAllowed)

	room, err = d.Handle(ctx, code, Event{Type: EventRollDie, Actor: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "rolling", room.MiniGame.Duel.Step)

	// A second roll from the same duelist is swallowed, not an error.
	unchanged, err := d.Handle(ctx, code, Event{Type: EventRollDie, Actor: "p1"})
	require.NoError(t, err)
	assert.Equal(t, room.MiniGame.Duel.Rolls, unchanged.MiniGame.Duel.Rolls)

	room, err = d.Handle(ctx, code, Event{Type: EventRollDie, Actor: "p2"})
	require.NoError(t, err)
	st := room.MiniGame.Duel
	assert.Equal(t, "result", st.Step)
	require.NotNil(t, st.Result)

	res := st.Result
	assert.Equal(t, st.Rolls["p1"].Value, res.ActiveRoll)
	assert.Equal(t, st.Rolls["p2"].Value, res.OpponentRoll)
	if res.ActiveRoll == res.OpponentRoll {
		assert.Equal(t, "both", res.Loser)
	} else {
		assert.Contains(t, []string{"p1", "p2"}, res.Loser)
		assert.Equal(t, res.Diff, res.Sips)
	}
}

func TestTimerFlow(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "3")
	d := newDispatcher(s)
	defer d.CancelRoom(code)

	// Only the previous player in order judges; with index 0 that is p3.
	_, err := d.Handle(ctx, code, Event{Type: EventStartTimer, Actor: "p2"})
	assert.ErrorIs(t, err, ErrNotAllowed)

	room, err := d.Handle(ctx, code, Event{Type: EventStartTimer, Actor: "p3"})
	require.NoError(t, err)
	assert.Equal(t, "running", room.MiniGame.Timer.Status)
	assert.NotZero(t, room.MiniGame.Timer.StartTime)

	room, err = d.Handle(ctx, code, Event{Type: EventValidateTimer, Actor: "p3"})
	require.NoError(t, err)
	assert.Equal(t, "success", room.MiniGame.Timer.Status)

	// The expiry firing after validation changes nothing.
	room, err = d.Handle(ctx, code, Event{Type: eventTimerExpired})
	require.NoError(t, err)
	assert.Equal(t, "success", room.MiniGame.Timer.Status)
}

func TestTrinquetteFlow(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "4")
	d := newDispatcher(s)

	room, err := d.Handle(ctx, code, Event{Type: EventRollDice, Actor: "p1"})
	require.NoError(t, err)
	st := room.MiniGame.Trinquette
	assert.Equal(t, "announcing", st.Step)
	require.NotNil(t, st.Dice)
	assert.InDelta(t, 3.5, float64(st.Dice.D1), 2.5)

	room, err = d.Handle(ctx, code, Event{Type: EventAnnounce, Actor: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "deciding", room.MiniGame.Trinquette.Step)

	// Accepting hands the dice to the decider and hides them again.
	room, err = d.Handle(ctx, code, Event{Type: EventAccept, Actor: "p2"})
	require.NoError(t, err)
	st = room.MiniGame.Trinquette
	assert.Equal(t, "rolling", st.Step)
	assert.Equal(t, "p2", st.CurrentRoller)
	assert.Nil(t, st.Dice)

	_, err = d.Handle(ctx, code, Event{Type: EventRollDice, Actor: "p2"})
	require.NoError(t, err)
	_, err = d.Handle(ctx, code, Event{Type: EventAnnounce, Actor: "p2"})
	require.NoError(t, err)

	// p3 follows p2 in order, so only p3 may call the bluff.
	_, err = d.Handle(ctx, code, Event{Type: EventCallLiar, Actor: "p1"})
	assert.ErrorIs(t, err, ErrNotAllowed)

	room, err = d.Handle(ctx, code, Event{Type: EventCallLiar, Actor: "p3"})
	require.NoError(t, err)
	st = room.MiniGame.Trinquette
	assert.Equal(t, "result", st.Step)
	assert.Equal(t, "liar", st.Decision)
	assert.Equal(t, "p3", st.DeciderID)
	assert.NotNil(t, st.Dice)
}

func TestSixTimeReadyCheck(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "6")
	d := newDispatcher(s)
	defer d.CancelRoom(code)

	room, err := d.Handle(ctx, code, Event{Type: EventToggleReady, Actor: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "waiting", room.MiniGame.SixTime.State)

	// Toggling off works while still waiting.
	room, err = d.Handle(ctx, code, Event{Type: EventToggleReady, Actor: "p1"})
	require.NoError(t, err)
	assert.Empty(t, room.MiniGame.SixTime.Ready)

	for _, id := range []string{"p1", "p2"} {
		_, err = d.Handle(ctx, code, Event{Type: EventToggleReady, Actor: id})
		require.NoError(t, err)
	}
	room, err = d.Handle(ctx, code, Event{Type: EventToggleReady, Actor: "p3"})
	require.NoError(t, err)
	assert.Equal(t, "countdown", room.MiniGame.SixTime.State)

	room, err = d.Handle(ctx, code, Event{Type: eventSixTimeGo})
	require.NoError(t, err)
	assert.Equal(t, "running", room.MiniGame.SixTime.State)
	assert.NotZero(t, room.MiniGame.SixTime.StartTime)

	for _, id := range []string{"p1", "p2", "p3"} {
		room, err = d.Handle(ctx, code, Event{Type: EventStopClock, Actor: id})
		require.NoError(t, err)
	}
	assert.Len(t, room.MiniGame.SixTime.PlayerTimes, 3)

	room, err = d.Handle(ctx, code, Event{Type: eventSixTimeDone})
	require.NoError(t, err)
	assert.Equal(t, "finished", room.MiniGame.SixTime.State)
}

func TestLottoFlow(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "7")
	d := newDispatcher(s)

	// Only the active player bets.
	_, err := d.Handle(ctx, code, Event{Type: EventPlaceBet, Actor: "p2", BetType: LottoBetExact, BetValue: 2})
	assert.ErrorIs(t, err, ErrNotAllowed)

	room, err := d.Handle(ctx, code, Event{Type: EventPlaceBet, Actor: "p1", BetType: LottoBetExact, BetValue: 2})
	require.NoError(t, err)
	assert.Equal(t, "voting", room.MiniGame.Lotto.Step)

	_, err = d.Handle(ctx, code, Event{Type: EventCastFingers, Actor: "p2", Fingers: ptr(1)})
	require.NoError(t, err)
	room, err = d.Handle(ctx, code, Event{Type: EventCastFingers, Actor: "p3", Fingers: ptr(1)})
	require.NoError(t, err)

	st := room.MiniGame.Lotto
	assert.Equal(t, "revealing", st.Step)
	require.NotNil(t, st.Result)
	assert.Equal(t, 2, st.Result.TotalFingers)
	assert.True(t, st.Result.Won)
	assert.Equal(t, 4, st.Result.Distribution)
}

func TestPMURace(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "J")
	d := newDispatcher(s)
	defer d.CancelRoom(code)

	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := d.Handle(ctx, code, Event{
			Type:  EventPlaceRaceBet,
			Actor: id,
			Suit:  model.Hearts,
			Sips:  2,
		})
		require.NoError(t, err)
	}

	room, err := d.Handle(ctx, code, Event{Type: eventRaceStart})
	require.NoError(t, err)
	st := room.MiniGame.PMU
	assert.Equal(t, "racing", st.Step)
	assert.Len(t, st.PenaltyCards, 5)
	for _, suit := range model.Suits {
		assert.Zero(t, st.Positions[suit])
	}

	room, err = d.Handle(ctx, code, Event{Type: eventRaceTick})
	require.NoError(t, err)
	st = room.MiniGame.PMU
	require.Len(t, st.DrawnCards, 1)
	assert.Equal(t, 1, st.Positions[st.DrawnCards[0].Suit])
}

func TestCupidBindsLovers(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "Q")
	d := newDispatcher(s)

	_, err := d.Handle(ctx, code, Event{Type: EventChooseLovers, Actor: "p1", Targets: []string{"p1", "p2"}})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	room, err := d.Handle(ctx, code, Event{Type: EventChooseLovers, Actor: "p1", Targets: []string{"p2", "p3"}})
	require.NoError(t, err)
	assert.Equal(t, "finished", room.MiniGame.Cupid.Step)
	require.Len(t, room.Lovers, 2)
	assert.Equal(t, "Bob", room.Lovers[0].Name)
	assert.Equal(t, "Carol", room.Lovers[1].Name)

	// A later queen rebinds the couple instead of stacking a second one.
	_, err = s.Update(ctx, code, func(r *model.Room) error {
		r.CurrentTurnIndex = 1
		r.MiniGame = nil
		return nil
	})
	require.NoError(t, err)

	room, err = d.Handle(ctx, code, Event{Type: EventChooseLovers, Actor: "p2", Targets: []string{"p1", "p3"}})
	require.NoError(t, err)
	require.Len(t, room.Lovers, 2)
	assert.Equal(t, "Alice", room.Lovers[0].Name)
	assert.Equal(t, "Carol", room.Lovers[1].Name)
}

func TestPurpleRotation(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	code := playingRoom(t, s, "5")
	d := newDispatcher(s)

	guesses := []string{"red", "more", "in", string(model.Hearts)}
	for i, g := range guesses {
		room, err := d.Handle(ctx, code, Event{Type: EventPurpleGuess, Actor: "p1", Guess: g})
		require.NoError(t, err)
		st := room.MiniGame.Purple
		assert.Equal(t, i+1, st.Step)
		assert.Len(t, st.Cards, i+1)
		require.NotNil(t, st.LastResult)
		if !st.LastResult.Won {
			assert.Equal(t, i+1, st.LastResult.Sips)
		}
	}

	// The ladder hands over to the next player until the circle closes.
	room, err := d.Handle(ctx, code, Event{Type: EventPurpleNext, Actor: "p1"})
	require.NoError(t, err)
	st := room.MiniGame.Purple
	assert.Equal(t, "p2", st.CurrentPlayer)
	assert.Zero(t, st.Step)
	assert.Empty(t, st.Cards)
	assert.Equal(t, []string{"p1"}, st.PlayersDone)
}

func TestNoteFlow(t *testing.T) {
	ctx := context.Background()
	s := store_memory.New()
	room := model.Room{
		Code:   "NOTE01",
		Status: model.StatusPlaying,
		HostID: "p1",
		Players: map[string]model.Player{
			"p1": {ID: "p1", Name: "Alice", IsHost: true},
			"p2": {ID: "p2", Name: "Bob"},
			"p3": {ID: "p3", Name: "Carol"},
			"p4": {ID: "p4", Name: "Dave"},
		},
		Order:      []string{"p1", "p2", "p3", "p4"},
		ActiveCard: &model.Card{Suit: model.Spades, Value: "10"},
	}
	require.NoError(t, s.Create(ctx, room))
	d := newDispatcher(s)
	defer d.CancelRoom(room.Code)

	primed, err := d.Prime(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, "voting", primed.MiniGame.Note.Step)

	// The rated player has no vote.
	_, err = d.Handle(ctx, room.Code, Event{Type: EventCastNote, Actor: "p1", Note: 5})
	assert.ErrorIs(t, err, ErrNotAllowed)

	for actor, note := range map[string]int{"p2": 5, "p3": 5, "p4": 7} {
		_, err = d.Handle(ctx, room.Code, Event{Type: EventCastNote, Actor: actor, Note: note})
		require.NoError(t, err)
	}

	state, err := d.Handle(ctx, room.Code, Event{Type: eventNoteClose})
	require.NoError(t, err)
	assert.Equal(t, "revealing", state.MiniGame.Note.Step)
	assert.Equal(t, 5, state.MiniGame.Note.WinningNote)

	// Guessing stays gated until the reveal pause elapses.
	state, err = d.Handle(ctx, room.Code, Event{Type: EventGuessNote, Actor: "p1", Note: 5})
	require.NoError(t, err)
	assert.Equal(t, "revealing", state.MiniGame.Note.Step)

	state, err = d.Handle(ctx, room.Code, Event{Type: eventNoteGuessOpen})
	require.NoError(t, err)
	assert.Equal(t, "guessing", state.MiniGame.Note.Step)

	state, err = d.Handle(ctx, room.Code, Event{Type: EventGuessNote, Actor: "p1", Note: 5})
	require.NoError(t, err)
	st := state.MiniGame.Note
	assert.Equal(t, "finished", st.Step)
	require.NotNil(t, st.Result)
	assert.True(t, st.Result.Correct)
	assert.Equal(t, 5, st.Result.Guess)
}
