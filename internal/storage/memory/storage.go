package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// All conditional writes (unique inserts, seat claims) happen under the
// mutex, which gives them the required atomicity.
type Storage struct {
	mu sync.RWMutex

	users          map[model.UserID]*model.User
	userNameIndex  map[string]model.UserID
	userEmailIndex map[string]model.UserID
	rooms          map[model.RoomID]*model.Room
	roomNameIndex  map[string]model.RoomID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:          make(map[model.UserID]*model.User),
		userNameIndex:  make(map[string]model.UserID),
		userEmailIndex: make(map[string]model.UserID),
		rooms:          make(map[model.RoomID]*model.Room),
		roomNameIndex:  make(map[string]model.RoomID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.userNameIndex[user.Name]; taken {
		return model.ErrUserExists
	}
	if _, taken := s.userEmailIndex[user.Email]; taken {
		return model.ErrUserExists
	}
	u := *user
	s.users[u.ID] = &u
	s.userNameIndex[u.Name] = u.ID
	s.userEmailIndex[u.Email] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userNameIndex[name]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userEmailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	if user.Email != existing.Email {
		if owner, taken := s.userEmailIndex[user.Email]; taken && owner != user.ID {
			return model.ErrUserExists
		}
		delete(s.userEmailIndex, existing.Email)
		s.userEmailIndex[user.Email] = user.ID
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	delete(s.userNameIndex, user.Name)
	delete(s.userEmailIndex, user.Email)
	delete(s.users, id)
	return nil
}

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.roomNameIndex[room.Name]; taken {
		return model.ErrRoomExists
	}
	r := *room
	s.rooms[r.ID] = &r
	s.roomNameIndex[r.Name] = r.ID
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	r := *room
	return &r, nil
}

func (s *Storage) GetRoomByName(ctx context.Context, name string) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.roomNameIndex[name]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	r := *s.rooms[id]
	return &r, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		r := *room
		rooms = append(rooms, &r)
	}
	return rooms, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rooms[room.ID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if room.Name != existing.Name {
		if owner, taken := s.roomNameIndex[room.Name]; taken && owner != room.ID {
			return model.ErrRoomExists
		}
		delete(s.roomNameIndex, existing.Name)
		s.roomNameIndex[room.Name] = room.ID
	}
	r := *room
	s.rooms[r.ID] = &r
	return nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return model.ErrRoomNotFound
	}
	delete(s.roomNameIndex, room.Name)
	delete(s.rooms, id)
	return nil
}

// Seat operations

func (s *Storage) ClaimSeat(ctx context.Context, id model.RoomID, claimant model.UserID, now time.Time) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	if room.Player1 != nil && *room.Player1 == claimant {
		return nil, model.ErrSelfJoin
	}
	if room.Player2 != nil {
		if *room.Player2 == claimant {
			r := *room
			return &r, nil
		}
		return nil, model.ErrRoomFull
	}
	room.Player2 = &claimant
	room.SyncStatus()
	room.UpdatedAt = now
	r := *room
	return &r, nil
}

func (s *Storage) ClearSeats(ctx context.Context, user model.UserID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.rooms {
		changed := false
		if room.Player1 != nil && *room.Player1 == user {
			room.Player1 = nil
			changed = true
		}
		if room.Player2 != nil && *room.Player2 == user {
			room.Player2 = nil
			changed = true
		}
		if changed {
			room.SyncStatus()
			room.UpdatedAt = now
		}
	}
	return nil
}
