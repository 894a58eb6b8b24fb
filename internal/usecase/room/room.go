package usecase_room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mustachio/server/internal/model"
	"github.com/mustachio/server/internal/store"
	usecase_turn "github.com/mustachio/server/internal/usecase/turn"
)

var (
	ErrEmptyName      = errors.New("player name required")
	ErrNotFound       = errors.New("no such room")
	ErrAlreadyStarted = errors.New("game already started")
	ErrRoomFull       = errors.New("room is full")
	ErrNotInRoom      = errors.New("player not in room")
	ErrInternal       = errors.New("internal error")
)

// codeAlphabet excludes glyphs that are easy to confuse when a code is read
// out loud or typed from a screen (0/O, 1/I, ...).
const (
	codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	codeLen      = 6

	avatarCount   = 20
	createRetries = 3
)

type Usecase struct {
	store store.Store
}

func New(s store.Store) *Usecase {
	return &Usecase{store: s}
}

// Create allocates a fresh room with the host as its only participant.
// Codes are regenerated on collision.
func (u *Usecase) Create(ctx context.Context, hostName string) (roomCode string, hostID string, err error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return "", "", ErrEmptyName
	}

	hostID = uuid.New().String()
	host := model.Player{
		ID:       hostID,
		Name:     hostName,
		IsHost:   true,
		Avatar:   AvatarFromName(hostName),
		JoinedAt: time.Now().UnixMilli(),
	}

	for retries := createRetries; retries > 0; retries-- {
		code := buildRoomCode()
		room := model.Room{
			Code:      code,
			Name:      hostName + "'s Table",
			Status:    model.StatusWaiting,
			HostID:    hostID,
			CreatedAt: time.Now().UnixMilli(),
			Players:   map[string]model.Player{hostID: host},
		}

		switch err := u.store.Create(ctx, room); {
		case err == nil:
			return code, hostID, nil
		case errors.Is(err, store.ErrCodeTaken):
			continue
		default:
			return "", "", fmt.Errorf("%w : %w", ErrInternal, err)
		}
	}
	return "", "", ErrInternal
}

// Join appends a new participant, failing before any write when the room is
// absent, already playing, or at the player cap.
func (u *Usecase) Join(ctx context.Context, code, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	playerID := uuid.New().String()
	_, err := u.store.Update(ctx, code, func(r *model.Room) error {
		if r.Status != model.StatusWaiting {
			return ErrAlreadyStarted
		}
		if len(r.Players) >= model.MaxPlayers {
			return ErrRoomFull
		}
		r.Players[playerID] = model.Player{
			ID:       playerID,
			Name:     name,
			Avatar:   AvatarFromName(name),
			JoinedAt: time.Now().UnixMilli(),
		}
		return nil
	})
	if err != nil {
		return "", u.mapStoreErr(err)
	}
	return playerID, nil
}

// Leave removes a participant. The last player out deletes the room; a
// departing host hands the role to the remaining player with the lowest id,
// so every non-empty room always has exactly one host.
func (u *Usecase) Leave(ctx context.Context, code, playerID string) error {
	room, err := u.store.Update(ctx, code, func(r *model.Room) error {
		if !r.HasPlayer(playerID) {
			return ErrNotInRoom
		}
		wasHost := r.Players[playerID].IsHost
		delete(r.Players, playerID)

		if wasHost && len(r.Players) > 0 {
			ids := make([]string, 0, len(r.Players))
			for id := range r.Players {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			next := r.Players[ids[0]]
			next.IsHost = true
			r.Players[ids[0]] = next
			r.HostID = next.ID
		}

		usecase_turn.SkipAbsent(r)
		return nil
	})
	if err != nil {
		return u.mapStoreErr(err)
	}

	if len(room.Players) == 0 {
		if err := u.store.Delete(ctx, code); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w : %w", ErrInternal, err)
		}
	}
	return nil
}

// Get returns the room snapshot.
func (u *Usecase) Get(ctx context.Context, code string) (model.Room, error) {
	room, err := u.store.Get(ctx, code)
	if err != nil {
		return model.Room{}, u.mapStoreErr(err)
	}
	return room, nil
}

// Subscribe registers fn for every room change, snapshot-first.
func (u *Usecase) Subscribe(ctx context.Context, code string, fn store.Snapshot) (func(), error) {
	unsub, err := u.store.Subscribe(ctx, code, fn)
	if err != nil {
		return nil, u.mapStoreErr(err)
	}
	return unsub, nil
}

func (u *Usecase) mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrAlreadyStarted),
		errors.Is(err, ErrRoomFull),
		errors.Is(err, ErrNotInRoom):
		return err
	default:
		return fmt.Errorf("%w : %w", ErrInternal, err)
	}
}

func buildRoomCode() string {
	var builder strings.Builder
	builder.Grow(codeLen)
	for i := 0; i < codeLen; i++ {
		builder.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return builder.String()
}

// AvatarFromName derives a stable avatar index from a display name, so the
// same name gets the same face on every client.
func AvatarFromName(name string) int {
	var hash int32
	for _, r := range name {
		hash = (hash<<5 - hash) + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash % avatarCount)
}
