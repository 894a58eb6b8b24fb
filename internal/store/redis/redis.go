package store_redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis"

	"github.com/mustachio/server/internal/model"
	"github.com/mustachio/server/internal/store"
)

const deletedMarker = "null"

// Store keeps each room as one JSON document under rooms:<code> and fans
// snapshots out over a pub/sub channel per room. Concurrent read-modify-write
// cycles are not serialized across processes: whichever write lands last at
// redis wins, which is the consistency level the protocol is designed for.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

func New(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: slog.Default(),
	}
}

func roomKey(code string) string     { return "rooms:" + code }
func roomChannel(code string) string { return "rooms:" + code + ":events" }

func (s *Store) Create(_ context.Context, room model.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}

	ok, err := s.client.SetNX(roomKey(room.Code), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}
	if !ok {
		return store.ErrCodeTaken
	}
	return nil
}

func (s *Store) Get(_ context.Context, code string) (model.Room, error) {
	return s.load(code)
}

func (s *Store) Update(_ context.Context, code string, mutate func(room *model.Room) error) (model.Room, error) {
	room, err := s.load(code)
	if err != nil {
		return model.Room{}, err
	}

	if err := mutate(&room); err != nil {
		return model.Room{}, err
	}

	raw, err := json.Marshal(room)
	if err != nil {
		return model.Room{}, fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}
	if err := s.client.Set(roomKey(code), raw, 0).Err(); err != nil {
		return model.Room{}, fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}
	if err := s.client.Publish(roomChannel(code), raw).Err(); err != nil {
		s.logger.Error("failed to publish room snapshot", "room", code, "error", err)
	}
	return room, nil
}

func (s *Store) Delete(_ context.Context, code string) error {
	removed, err := s.client.Del(roomKey(code)).Result()
	if err != nil {
		return fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	if err := s.client.Publish(roomChannel(code), deletedMarker).Err(); err != nil {
		s.logger.Error("failed to publish room deletion", "room", code, "error", err)
	}
	return nil
}

func (s *Store) Subscribe(_ context.Context, code string, fn store.Snapshot) (func(), error) {
	current, err := s.load(code)
	if err != nil {
		return nil, err
	}

	pubsub := s.client.Subscribe(roomChannel(code))
	if _, err := pubsub.Receive(); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}

	fn(&current)

	go func() {
		for msg := range pubsub.Channel() {
			if msg.Payload == deletedMarker {
				fn(nil)
				continue
			}
			var room model.Room
			if err := json.Unmarshal([]byte(msg.Payload), &room); err != nil {
				s.logger.Error("dropping malformed room snapshot", "room", code, "error", err)
				continue
			}
			fn(&room)
		}
	}()

	return func() {
		_ = pubsub.Close()
	}, nil
}

func (s *Store) load(code string) (model.Room, error) {
	raw, err := s.client.Get(roomKey(code)).Result()
	if err == redis.Nil {
		return model.Room{}, store.ErrNotFound
	}
	if err != nil {
		return model.Room{}, fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}

	var room model.Room
	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		return model.Room{}, fmt.Errorf("%w : %w", store.ErrUnavailable, err)
	}
	return room, nil
}
