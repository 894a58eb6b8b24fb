package usecase_minigame

import (
	"math/rand"

	"github.com/mustachio/server/internal/model"
)

// previousPlayerID is the participant one seat before the current turn, the
// judge role in the 3-3-3.
func previousPlayerID(r *model.Room) string {
	n := len(r.Order)
	if n == 0 {
		return ""
	}
	return r.Order[(r.CurrentTurnIndex-1+n)%n]
}

// nextInOrder is the participant one seat after id, absent seats included:
// order membership is never repaired, so callers must tolerate a gone player.
func nextInOrder(r *model.Room, id string) string {
	n := len(r.Order)
	for i, pid := range r.Order {
		if pid == id {
			return r.Order[(i+1)%n]
		}
	}
	return ""
}

// presentInOrder counts order members still in the player map.
func presentInOrder(r *model.Room) []string {
	present := make([]string, 0, len(r.Order))
	for _, pid := range r.Order {
		if r.HasPlayer(pid) {
			present = append(present, pid)
		}
	}
	return present
}

func playerName(r *model.Room, id string) string {
	return r.Players[id].Name
}

func rollDie() int {
	return rand.Intn(6) + 1
}
