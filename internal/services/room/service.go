package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/clock"
	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid room credentials")
	ErrInvalidStatus      = errors.New("invalid room status")
)

// UpdatePatch carries the mutable room fields. Nil pointers mean
// "leave unchanged".
type UpdatePatch struct {
	Name     *string
	Password *string
	Status   *model.RoomStatus
}

// Service handles game rooms: creation, joining and room management.
// Mutations are allowed for the room owner (first seat) or an admin.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	hasher  *credential.Hasher
}

// New creates a new room Service
func New(storage storage.Storage, clk clock.Clock, hasher *credential.Hasher) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		hasher:  hasher,
	}
}

// Create opens a room with the caller seated as the first player. The
// room is written in a single insert, so it is never observable without
// its owner seated.
func (s *Service) Create(ctx context.Context, caller model.Identity, name, password string) (*model.Room, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name", model.ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", model.ErrMissingField)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	owner := caller.UserID
	now := s.clock.Now()
	room := &model.Room{
		ID:           model.RoomID(uuid.NewString()),
		Name:         name,
		PasswordHash: hash,
		Status:       model.RoomStatusWaiting,
		Player1:      &owner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Get returns a room by id
func (s *Service) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return s.storage.GetRoom(ctx, id)
}

// GetByName returns a room by its unique name
func (s *Service) GetByName(ctx context.Context, name string) (*model.Room, error) {
	return s.storage.GetRoomByName(ctx, name)
}

// List returns all rooms
func (s *Service) List(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}

// Join seats the caller as the second player of the named room. The
// room password gates the attempt; the seat itself is claimed with a
// conditional storage update, so when two players race for the last
// seat exactly one wins and the other sees the room as full. Joining
// again while already seated is a no-op success.
func (s *Service) Join(ctx context.Context, caller model.Identity, name, password string) (*model.Room, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name", model.ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", model.ErrMissingField)
	}

	room, err := s.storage.GetRoomByName(ctx, name)
	if err != nil {
		// An unknown room and a wrong password are indistinguishable to
		// the caller, mirroring login
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, room.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.storage.ClaimSeat(ctx, room.ID, caller.UserID, s.clock.Now())
}

// Update applies a patch to the room. Owner or admin only. The status
// may be set to any known value; seat assignments are not patchable.
func (s *Service) Update(ctx context.Context, caller model.Identity, id model.RoomID, patch UpdatePatch) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, room); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name", model.ErrMissingField)
		}
		room.Name = *patch.Name
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%w: password", model.ErrMissingField)
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		room.PasswordHash = hash
	}
	if patch.Status != nil {
		switch *patch.Status {
		case model.RoomStatusWaiting, model.RoomStatusPlaying, model.RoomStatusFinished:
			room.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *patch.Status)
		}
	}

	room.UpdatedAt = s.clock.Now()
	if err := s.storage.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes the room. Owner or admin only. Returns the deleted room.
func (s *Service) Delete(ctx context.Context, caller model.Identity, id model.RoomID) (*model.Room, error) {
	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, room); err != nil {
		return nil, err
	}

	if err := s.storage.DeleteRoom(ctx, id); err != nil {
		return nil, err
	}
	return room, nil
}

// authorize admits the room owner or an admin
func (s *Service) authorize(ctx context.Context, caller model.Identity, room *model.Room) error {
	if room.Player1 != nil && *room.Player1 == caller.UserID {
		return nil
	}
	user, err := s.storage.GetUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.ErrForbidden
		}
		return err
	}
	if !user.IsAdmin() {
		return model.ErrForbidden
	}
	return nil
}
