package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // 0 or 1 seats filled
	RoomStatusPlaying  RoomStatus = "playing"  // both seats filled
	RoomStatusFinished RoomStatus = "finished" // terminal, set once gameplay concludes
)

// Room is a named, password-protected space with two seats.
// Player1 is taken by the creator at creation time; Player2 is claimed by a
// later join. Seat references are weak: they relate a room to users without
// owning them.
type Room struct {
	ID           RoomID
	Name         string // unique
	PasswordHash string
	Status       RoomStatus
	Player1      *UserID
	Player2      *UserID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSeat reports whether the user occupies either seat
func (r *Room) HasSeat(id UserID) bool {
	if r.Player1 != nil && *r.Player1 == id {
		return true
	}
	if r.Player2 != nil && *r.Player2 == id {
		return true
	}
	return false
}

// SyncStatus recomputes the lifecycle status from seat occupancy.
// Finished is terminal and never recomputed.
func (r *Room) SyncStatus() {
	if r.Status == RoomStatusFinished {
		return
	}
	if r.Player1 != nil && r.Player2 != nil {
		r.Status = RoomStatusPlaying
	} else {
		r.Status = RoomStatusWaiting
	}
}
