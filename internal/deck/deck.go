package deck

import (
	"math/rand"

	"github.com/mustachio/server/internal/model"
)

// Values in deck-generation order, ace high.
var Values = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// gameByValue maps each of the 13 ranks to its mini-game. Total over the
// closed rank set; anything else never occurs in a generated deck.
var gameByValue = map[string]model.MiniGameID{
	"A":  model.GameCircleKing,
	"2":  model.GameDuel,
	"3":  model.GameTimer,
	"4":  model.GameTrinquette,
	"5":  model.GamePurple,
	"6":  model.GameSixTime,
	"7":  model.GameFingerLotto,
	"8":  model.GameMedusa,
	"9":  model.GameMiniBac,
	"10": model.GameNote,
	"J":  model.GamePMU,
	"Q":  model.GameCupid,
	"K":  model.GameMustachio,
}

// Generate returns a freshly shuffled 52-card deck.
func Generate() []model.Card {
	cards := make([]model.Card, 0, len(model.Suits)*len(Values))
	for _, suit := range model.Suits {
		for _, value := range Values {
			cards = append(cards, model.Card{
				Suit:  suit,
				Value: value,
				ID:    value + string(suit),
			})
		}
	}
	shuffle(cards)
	return cards
}

// shuffle is an in-place Fisher–Yates permutation over the process-wide
// locked source, so it is safe from concurrent room mutations.
func shuffle(cards []model.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// GameForValue returns the mini-game a card rank dispatches to.
func GameForValue(value string) model.MiniGameID {
	return gameByValue[value]
}

// ValueRank orders card values for comparisons, ace high (2=2 … A=14).
func ValueRank(value string) int {
	switch value {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	case "10":
		return 10
	default:
		return int(value[0] - '0')
	}
}

// Draw returns one uniformly random card from the full 52-card space. Used
// by the mini-games that deal outside the room's deck.
func Draw() model.Card {
	suit := model.Suits[rand.Intn(len(model.Suits))]
	value := Values[rand.Intn(len(Values))]
	return model.Card{Suit: suit, Value: value, ID: value + string(suit)}
}
