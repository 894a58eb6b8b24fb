package usecase_minigame

import (
	"sync"
	"time"
)

// Scheduler owns the local timers behind mini-game pacing (voting windows,
// race ticks, reveal delays). Timers are keyed per room so a draw or an
// end-turn can drop everything still pending for that room; a timer that
// fires anyway is re-validated against the current state by the dispatcher.
type Scheduler struct {
	mu    sync.Mutex
	rooms map[string]map[EventType]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		rooms: make(map[string]map[EventType]*time.Timer),
	}
}

// After schedules fn once, replacing any pending timer for the same room and
// event type.
func (s *Scheduler) After(code string, ev EventType, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, ok := s.rooms[code]
	if !ok {
		timers = make(map[EventType]*time.Timer)
		s.rooms[code] = timers
	}
	if t, ok := timers[ev]; ok {
		t.Stop()
	}

	timers[ev] = time.AfterFunc(d, func() {
		s.mu.Lock()
		if t, ok := s.rooms[code][ev]; ok && t != nil {
			delete(s.rooms[code], ev)
		}
		s.mu.Unlock()
		fn()
	})
}

// CancelRoom stops every pending timer for the room.
func (s *Scheduler) CancelRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.rooms[code] {
		t.Stop()
	}
	delete(s.rooms, code)
}
