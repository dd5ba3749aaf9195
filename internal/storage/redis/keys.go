package redis

import (
	"fmt"

	"github.com/fourline/gameroom/internal/model"
)

// Key prefix for all room-service data
const keyPrefix = "gameroom"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// userNameIndexKey returns the Redis key for the name -> user_id index
func userNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:user_name:%s", keyPrefix, name)
}

// userEmailIndexKey returns the Redis key for the email -> user_id index
func userEmailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:user_email:%s", keyPrefix, email)
}

// usersSetKey returns the Redis key for the SET of all user ids
func usersSetKey() string {
	return fmt.Sprintf("%s:users", keyPrefix)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomNameIndexKey returns the Redis key for the name -> room_id index
func roomNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:room_name:%s", keyPrefix, name)
}

// roomsSetKey returns the Redis key for the SET of all room ids
func roomsSetKey() string {
	return fmt.Sprintf("%s:rooms", keyPrefix)
}
