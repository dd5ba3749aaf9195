package storage

import (
	"context"
	"time"

	"github.com/fourline/gameroom/internal/model"
)

// Storage defines the interface for data persistence.
//
// Uniqueness is enforced at the storage boundary: CreateUser and CreateRoom
// are atomic conditional inserts that fail with the matching Exists error
// rather than relying on a separate pre-check. ClaimSeat is the conditional
// update that serialises concurrent joins against the same room.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id model.UserID) error

	// Room operations
	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByName(ctx context.Context, name string) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	UpdateRoom(ctx context.Context, room *model.Room) error
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// ClaimSeat assigns the second seat to claimant only if it is currently
	// unset, recomputing the room status in the same write. It fails with
	// model.ErrRoomFull when another user holds the seat, model.ErrSelfJoin
	// when the claimant already holds the first seat, and is idempotent for
	// a claimant that already holds the second seat.
	ClaimSeat(ctx context.Context, id model.RoomID, claimant model.UserID, now time.Time) (*model.Room, error)

	// ClearSeats nulls any seat held by the user across all rooms,
	// recomputing each affected room's status.
	ClearSeats(ctx context.Context, user model.UserID, now time.Time) error
}
