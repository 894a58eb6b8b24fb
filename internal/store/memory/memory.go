package store_memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mustachio/server/internal/model"
	"github.com/mustachio/server/internal/store"
)

type entry struct {
	mu   sync.Mutex
	room model.Room

	subMu  sync.Mutex
	nextID int
	subs   map[int]store.Snapshot
}

// Store is the in-process room container. Mutations on the same room are
// serialized by a per-room lock, which strengthens the remote store's
// last-write-wins model without changing the protocol.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*entry
}

func New() *Store {
	return &Store{
		rooms: make(map[string]*entry),
	}
}

func (s *Store) Create(_ context.Context, room model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[room.Code]; exists {
		return store.ErrCodeTaken
	}
	s.rooms[room.Code] = &entry{
		room: cloneRoom(room),
		subs: make(map[int]store.Snapshot),
	}
	return nil
}

func (s *Store) Get(_ context.Context, code string) (model.Room, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Room{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRoom(e.room), nil
}

func (s *Store) Update(_ context.Context, code string, mutate func(room *model.Room) error) (model.Room, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Room{}, err
	}

	e.mu.Lock()
	next := cloneRoom(e.room)
	if err := mutate(&next); err != nil {
		e.mu.Unlock()
		return model.Room{}, err
	}
	e.room = next
	out := cloneRoom(next)
	e.mu.Unlock()

	e.notify(&out)
	return out, nil
}

func (s *Store) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	e, exists := s.rooms[code]
	if !exists {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	delete(s.rooms, code)
	s.mu.Unlock()

	e.notify(nil)
	return nil
}

func (s *Store) Subscribe(_ context.Context, code string, fn store.Snapshot) (func(), error) {
	e, err := s.entry(code)
	if err != nil {
		return nil, err
	}

	e.subMu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.subMu.Unlock()

	e.mu.Lock()
	current := cloneRoom(e.room)
	e.mu.Unlock()
	fn(&current)

	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}, nil
}

func (s *Store) entry(code string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.rooms[code]
	if !exists {
		return nil, store.ErrNotFound
	}
	return e, nil
}

func (e *entry) notify(room *model.Room) {
	e.subMu.Lock()
	subs := make([]store.Snapshot, 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.subMu.Unlock()

	for _, fn := range subs {
		if room == nil {
			fn(nil)
			continue
		}
		copied := cloneRoom(*room)
		fn(&copied)
	}
}

// cloneRoom deep-copies a room so no caller ever aliases stored state.
// Subscribers get full snapshot semantics, same as the remote store.
func cloneRoom(r model.Room) model.Room {
	raw, err := json.Marshal(r)
	if err != nil {
		return r
	}
	var out model.Room
	if err := json.Unmarshal(raw, &out); err != nil {
		return r
	}
	return out
}
