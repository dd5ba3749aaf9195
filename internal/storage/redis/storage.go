package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Unique inserts are claimed with SETNX on index keys; conditional seat
// updates use WATCH-based optimistic transactions so concurrent joins
// against the same room serialise correctly.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Claim the unique name, then the unique email. SETNX makes each claim
	// atomic; a lost claim surfaces as ErrUserExists with no pre-check race.
	ok, err := s.client.SetNX(ctx, userNameIndexKey(user.Name), string(user.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUserExists
	}

	ok, err = s.client.SetNX(ctx, userEmailIndexKey(user.Email), string(user.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		// Release the name claim before reporting the conflict
		_ = s.client.Del(ctx, userNameIndexKey(user.Name)).Err()
		return model.ErrUserExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.SAdd(ctx, usersSetKey(), string(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	id, err := s.client.Get(ctx, userNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := s.client.Get(ctx, userEmailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.SMembers(ctx, usersSetKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(model.UserID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
			continue
		}
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	existing, err := s.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if user.Email != existing.Email {
		ok, err := s.client.SetNX(ctx, userEmailIndexKey(user.Email), string(user.ID), 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrUserExists
		}
		pipe := s.client.Pipeline()
		pipe.Set(ctx, userKey(user.ID), data, 0)
		pipe.Del(ctx, userEmailIndexKey(existing.Email))
		_, err = pipe.Exec(ctx)
		return err
	}

	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, userNameIndexKey(user.Name))
	pipe.Del(ctx, userEmailIndexKey(user.Email))
	pipe.SRem(ctx, usersSetKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Room operations

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, roomNameIndexKey(room.Name), string(room.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrRoomExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.ID), data, 0)
	pipe.SAdd(ctx, roomsSetKey(), string(room.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) GetRoomByName(ctx context.Context, name string) (*model.Room, error) {
	id, err := s.client.Get(ctx, roomNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}
	return s.GetRoom(ctx, model.RoomID(id))
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	ids, err := s.client.SMembers(ctx, roomsSetKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Room{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKey(model.RoomID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var room model.Room
		if err := json.Unmarshal([]byte(val.(string)), &room); err != nil {
			continue
		}
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, room *model.Room) error {
	existing, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	if room.Name != existing.Name {
		ok, err := s.client.SetNX(ctx, roomNameIndexKey(room.Name), string(room.ID), 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrRoomExists
		}
		pipe := s.client.Pipeline()
		pipe.Set(ctx, roomKey(room.ID), data, 0)
		pipe.Del(ctx, roomNameIndexKey(existing.Name))
		_, err = pipe.Exec(ctx)
		return err
	}

	return s.client.Set(ctx, roomKey(room.ID), data, 0).Err()
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, roomKey(id))
	pipe.Del(ctx, roomNameIndexKey(room.Name))
	pipe.SRem(ctx, roomsSetKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Seat operations

func (s *Storage) ClaimSeat(ctx context.Context, id model.RoomID, claimant model.UserID, now time.Time) (*model.Room, error) {
	key := roomKey(id)
	var claimed *model.Room

	claim := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrRoomNotFound
			}
			return err
		}

		var room model.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return err
		}

		if room.Player1 != nil && *room.Player1 == claimant {
			return model.ErrSelfJoin
		}
		if room.Player2 != nil {
			if *room.Player2 == claimant {
				claimed = &room
				return nil
			}
			return model.ErrRoomFull
		}

		room.Player2 = &claimant
		room.SyncStatus()
		room.UpdatedAt = now

		updated, err := json.Marshal(&room)
		if err != nil {
			return err
		}

		// The write only commits if no other client touched the room key
		// since the WATCH; the loser retries and then observes the taken seat.
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err != nil {
			return err
		}

		claimed = &room
		return nil
	}

	retries := s.cfg.ClaimRetries
	if retries <= 0 {
		retries = DefaultConfig().ClaimRetries
	}

	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, claim, key)
		if err == nil {
			return claimed, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, model.ErrRoomFull
}

func (s *Storage) ClearSeats(ctx context.Context, user model.UserID, now time.Time) error {
	ids, err := s.client.SMembers(ctx, roomsSetKey()).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		key := roomKey(model.RoomID(id))

		clear := func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return nil
				}
				return err
			}

			var room model.Room
			if err := json.Unmarshal(data, &room); err != nil {
				return err
			}

			changed := false
			if room.Player1 != nil && *room.Player1 == user {
				room.Player1 = nil
				changed = true
			}
			if room.Player2 != nil && *room.Player2 == user {
				room.Player2 = nil
				changed = true
			}
			if !changed {
				return nil
			}

			room.SyncStatus()
			room.UpdatedAt = now

			updated, err := json.Marshal(&room)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, 0)
				return nil
			})
			return err
		}

		if err := s.client.Watch(ctx, clear, key); err != nil && !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return nil
}
