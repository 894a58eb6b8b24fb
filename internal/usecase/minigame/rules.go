package usecase_minigame

import "github.com/mustachio/server/internal/model"

// Rule describes a card game for clients. Games without an engine entry are
// played entirely around the table; the server only shows the rule text and
// waits for the turn to end.
type Rule struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Interactive bool   `json:"interactive"`
}

var rules = map[model.MiniGameID]Rule{
	model.GameCircleKing: {
		Title:       "Circle King",
		Description: "Invent a rule. It holds until someone else draws an ace.",
	},
	model.GameDuel: {
		Title:       "Duel",
		Description: "Pick an opponent. Both roll a die; the lower roll drinks the difference.",
		Interactive: true,
	},
	model.GameTimer: {
		Title:       "3-3-3",
		Description: "The previous player starts a 3-second timer. Name 3 things of their chosen theme before it runs out or drink 3.",
		Interactive: true,
	},
	model.GameTrinquette: {
		Title:       "Trinquette",
		Description: "Roll two dice in secret and announce a score, true or not. The next player accepts and rolls in turn, or calls liar and the dice are revealed.",
		Interactive: true,
	},
	model.GamePurple: {
		Title:       "Purple",
		Description: "Four guesses in a row: color, higher or lower, inside or outside, suit. Each miss costs one more sip than the last.",
		Interactive: true,
	},
	model.GameSixTime: {
		Title:       "Six o'Timer",
		Description: "Stop your clock on a multiple of six seconds. Within half a second you give sips, otherwise you drink them. The longer you wait the more is at stake.",
		Interactive: true,
	},
	model.GameFingerLotto: {
		Title:       "Finger Lotto",
		Description: "Bet on the total fingers the others will raise. The tighter the bet, the bigger the payout.",
		Interactive: true,
	},
	model.GameMedusa: {
		Title:       "Medusa",
		Description: "Heads down. On three, everyone looks at someone. Lock eyes and you both drink.",
	},
	model.GameMiniBac: {
		Title:       "Mini Bac",
		Description: "Pick a category. Go around the table naming entries; hesitate or repeat and you drink.",
	},
	model.GameNote: {
		Title:       "The Note",
		Description: "Everyone secretly rates the active player from 1 to 10. Guess the group's note to hand out sips, miss and drink.",
		Interactive: true,
	},
	model.GamePMU: {
		Title:       "PMU",
		Description: "Bet sips on a suit and watch the aces race. Back the winner and give your stake, lose and drink it.",
		Interactive: true,
	},
	model.GameCupid: {
		Title:       "Cupidon",
		Description: "Bind two players as lovers. When one drinks, so does the other, until the game ends.",
		Interactive: true,
	},
	model.GameMustachio: {
		Title:       "Mustachio",
		Description: "You are the Mustachio. Rest a finger mustache on your lip whenever you like; the last player to copy you drinks.",
	},
}

// RuleFor returns the display rule for a game.
func RuleFor(id model.MiniGameID) (Rule, bool) {
	r, ok := rules[id]
	return r, ok
}
