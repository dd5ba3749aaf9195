package response

import (
	"time"

	"github.com/fourline/gameroom/internal/model"
)

// User represents a user in API responses. The password hash is never
// serialised.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        string(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersFromModel converts a slice of model users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}

// AuthResponse is the response for a successful login
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Room represents a room in API responses. Seats are nullable user id
// references; the password hash is never serialised.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Player1   *string   `json:"player1"`
	Player2   *string   `json:"player2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	var p1, p2 *string
	if r.Player1 != nil {
		v := string(*r.Player1)
		p1 = &v
	}
	if r.Player2 != nil {
		v := string(*r.Player2)
		p2 = &v
	}
	return Room{
		ID:        string(r.ID),
		Name:      r.Name,
		Status:    string(r.Status),
		Player1:   p1,
		Player2:   p2,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RoomsFromModel converts a slice of model rooms
func RoomsFromModel(rooms []*model.Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = RoomFromModel(r)
	}
	return out
}

// RoomSummary is the compact room shape returned from a join
type RoomSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinResponse is the response for a successful join
type JoinResponse struct {
	Message string      `json:"message"`
	Room    RoomSummary `json:"room"`
}

// JoinResponseFromModel builds the join response for a room
func JoinResponseFromModel(r *model.Room) JoinResponse {
	return JoinResponse{
		Message: "room joined",
		Room: RoomSummary{
			ID:   string(r.ID),
			Name: r.Name,
		},
	}
}
