package model

// MiniGameID tags which of the thirteen card games a state blob belongs to.
type MiniGameID string

const (
	GameCircleKing  MiniGameID = "circle_king"  // A — invent a rule
	GameDuel        MiniGameID = "duel"         // 2 — dice duel
	GameTimer       MiniGameID = "timer"        // 3 — the 3-3-3
	GameTrinquette  MiniGameID = "trinquette"   // 4 — bluffing dice
	GamePurple      MiniGameID = "purple"       // 5 — escalating card guesses
	GameSixTime     MiniGameID = "six_time"     // 6 — stop on a multiple of six
	GameFingerLotto MiniGameID = "finger_lotto" // 7 — finger-counting lottery
	GameMedusa      MiniGameID = "medusa"       // 8 — look up, lock eyes
	GameMiniBac     MiniGameID = "mini_bac"     // 9 — alphabet theme round
	GameNote        MiniGameID = "note"         // 10 — guess the group's note
	GamePMU         MiniGameID = "pmu"          // J — suit horse race
	GameCupid       MiniGameID = "cupid"        // Q — bind two lovers
	GameMustachio   MiniGameID = "mustachio"    // K — special role
)

// MiniGameState is the per-turn sub-state nested under the room. Exactly one
// variant pointer matching Game is non-nil; the whole struct is cleared when
// a turn ends or a new card is drawn.
type MiniGameState struct {
	Game MiniGameID `json:"game"`

	Timer      *TimerState      `json:"timer,omitempty"`
	Duel       *DuelState       `json:"duel,omitempty"`
	Trinquette *TrinquetteState `json:"trinquette,omitempty"`
	Purple     *PurpleState     `json:"purple,omitempty"`
	SixTime    *SixTimeState    `json:"sixTime,omitempty"`
	Lotto      *LottoState      `json:"lotto,omitempty"`
	Note       *NoteState       `json:"note,omitempty"`
	PMU        *PMUState        `json:"pmu,omitempty"`
	Cupid      *CupidState      `json:"cupid,omitempty"`
}

// TimerState drives the 3-3-3: the previous player starts a 3-second window
// the active player must beat.
type TimerState struct {
	Status    string `json:"status"` // waiting | running | success | failed
	StartTime int64  `json:"startTime,omitempty"`
}

// DuelRoll is one die result in a duel.
type DuelRoll struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// DuelResult is the computed duel outcome.
type DuelResult struct {
	ActiveRoll   int    `json:"activeRoll"`
	OpponentRoll int    `json:"opponentRoll"`
	Diff         int    `json:"diff"`
	Loser        string `json:"loser"` // participant id, or "both" on a tie
	Sips         int    `json:"sips"`
}

type DuelState struct {
	Step       string              `json:"step"` // selecting | rolling | result
	OpponentID string              `json:"opponentId,omitempty"`
	Rolls      map[string]DuelRoll `json:"rolls"`
	Result     *DuelResult         `json:"result,omitempty"`
}

// Dice is a pair of six-sided dice.
type Dice struct {
	D1 int `json:"d1"`
	D2 int `json:"d2"`
}

type TrinquetteState struct {
	Step          string `json:"step"` // rolling | announcing | deciding | result
	CurrentRoller string `json:"currentRoller"`
	Dice          *Dice  `json:"dice,omitempty"`
	Decision      string `json:"decision,omitempty"` // set to "liar" on a call
	DeciderID     string `json:"deciderId,omitempty"`
}

// PurpleResult records the outcome of the last ladder step.
type PurpleResult struct {
	Won    bool   `json:"won"`
	Sips   int    `json:"sips"`
	Player string `json:"player"`
}

type PurpleState struct {
	Step          int           `json:"step"` // 0..4, 4 = ladder done for this player
	Cards         []Card        `json:"cards"`
	CurrentPlayer string        `json:"currentPlayer"`
	PlayersDone   []string      `json:"playersDone,omitempty"`
	LastResult    *PurpleResult `json:"lastResult,omitempty"`
}

// SixTimeEntry is one player's stopped clock.
type SixTimeEntry struct {
	Time float64 `json:"time"` // seconds
	Name string  `json:"name"`
}

type SixTimeState struct {
	State       string                  `json:"state"` // waiting | countdown | running | finished
	Ready       map[string]bool         `json:"ready"`
	StartTime   int64                   `json:"startTime,omitempty"`
	PlayerTimes map[string]SixTimeEntry `json:"playerTimes"`
}

// LottoBet is the active player's wager on the finger total.
type LottoBet struct {
	Type  string `json:"type"` // exact | range2 | range4
	Value int    `json:"value"`
}

// LottoVote is one participant's raised fingers (0–2).
type LottoVote struct {
	Fingers int    `json:"fingers"`
	Name    string `json:"name"`
}

// LottoResult is the resolved lottery outcome.
type LottoResult struct {
	TotalFingers int  `json:"totalFingers"`
	Won          bool `json:"won"`
	Sips         int  `json:"sips"`
	Distribution int  `json:"distribution"`
}

type LottoState struct {
	Step   string               `json:"step"` // betting | voting | revealing
	Bet    *LottoBet            `json:"bet,omitempty"`
	Votes  map[string]LottoVote `json:"votes"`
	Result *LottoResult         `json:"result,omitempty"`
}

// NoteVote is one voter's pick for the secret note.
type NoteVote struct {
	Note int    `json:"note"`
	Name string `json:"name"`
}

// NoteResult is the guesser's verdict.
type NoteResult struct {
	Correct bool `json:"correct"`
	Guess   int  `json:"guess"`
}

type NoteState struct {
	Step        string              `json:"step"` // voting | revealing | guessing | finished
	Votes       map[string]NoteVote `json:"votes"`
	WinningNote int                 `json:"winningNote,omitempty"`
	Result      *NoteResult         `json:"result,omitempty"`
}

// PMUBet is one participant's stake on a suit lane.
type PMUBet struct {
	Suit Suit   `json:"suit"`
	Sips int    `json:"sips"`
	Name string `json:"name"`
}

type PMUState struct {
	Step               string            `json:"step"` // betting | racing | finished
	Bets               map[string]PMUBet `json:"bets"`
	Positions          map[Suit]int      `json:"positions"`
	DrawnCards         []Card            `json:"drawnCards,omitempty"`
	PenaltyCards       map[int]Card      `json:"penaltyCards"`
	RevealedMilestones []int             `json:"revealedMilestones,omitempty"`
	ActivePenaltyCard  *Card             `json:"activePenaltyCard,omitempty"`
	Winner             Suit              `json:"winner,omitempty"`
}

type CupidState struct {
	Step   string  `json:"step"` // selecting | finished
	Lovers []Lover `json:"lovers,omitempty"`
}
