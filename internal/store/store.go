package store

import (
	"context"
	"errors"

	"github.com/mustachio/server/internal/model"
)

var (
	// ErrNotFound means no room exists under the given code.
	ErrNotFound = errors.New("room not found")
	// ErrCodeTaken means a room already exists under the code being created.
	ErrCodeTaken = errors.New("room code taken")
	// ErrUnavailable wraps transient backend failures (network, broker down).
	ErrUnavailable = errors.New("store unavailable")
)

// Snapshot is delivered to subscribers on every room change. The pointer is
// nil once the room has been deleted.
type Snapshot func(room *model.Room)

// Store is the shared real-time state container behind every room. It is an
// explicit client handle injected into the usecases, never a package-level
// singleton. Each mutation is a single read-modify-write and is the unit of
// atomicity: either the whole mutation lands or none of it does.
type Store interface {
	// Create writes a brand-new room, failing with ErrCodeTaken on collision.
	Create(ctx context.Context, room model.Room) error

	// Get returns the current snapshot of a room.
	Get(ctx context.Context, code string) (model.Room, error)

	// Update applies mutate to the current snapshot and writes the result
	// back, returning the room as written. A mutate error aborts the write
	// and is returned verbatim.
	Update(ctx context.Context, code string, mutate func(room *model.Room) error) (model.Room, error)

	// Delete removes the room and notifies subscribers with a nil snapshot.
	Delete(ctx context.Context, code string) error

	// Subscribe registers fn for every subsequent change of the room,
	// invoking it immediately with the current state. The returned handle
	// unregisters the subscription.
	Subscribe(ctx context.Context, code string, fn Snapshot) (func(), error)
}
