package model

// Suit is one of the four card suits, kept as the glyph the clients render.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"
)

// Suits in deck-generation order.
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is one of the 52 rank×suit combinations.
type Card struct {
	Suit  Suit   `json:"suit"`
	Value string `json:"value"`
	ID    string `json:"id"`
}
