package deck

import (
	"testing"

	"github.com/mustachio/server/internal/model"
)

func TestGenerateFullDeck(t *testing.T) {
	cards := Generate()

	if len(cards) != 52 {
		t.Fatalf("Generate() returned %d cards, want 52", len(cards))
	}

	seen := make(map[string]bool, 52)
	for _, c := range cards {
		if seen[c.ID] {
			t.Fatalf("duplicate card %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestGenerateShuffles(t *testing.T) {
	a := Generate()
	b := Generate()

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two generated decks came out in the same order")
	}
}

func TestGameForValueTotal(t *testing.T) {
	known := map[model.MiniGameID]bool{
		model.GameCircleKing: true, model.GameDuel: true, model.GameTimer: true,
		model.GameTrinquette: true, model.GamePurple: true, model.GameSixTime: true,
		model.GameFingerLotto: true, model.GameMedusa: true, model.GameMiniBac: true,
		model.GameNote: true, model.GamePMU: true, model.GameCupid: true,
		model.GameMustachio: true,
	}

	for _, v := range Values {
		game := GameForValue(v)
		if !known[game] {
			t.Errorf("GameForValue(%q) = %q, not in the mini-game set", v, game)
		}
	}
}

func TestValueRank(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"2", 2}, {"9", 9}, {"10", 10}, {"J", 11}, {"Q", 12}, {"K", 13}, {"A", 14},
	}
	for _, tt := range tests {
		if got := ValueRank(tt.value); got != tt.want {
			t.Errorf("ValueRank(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
