package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserRequest is the request body for patching a user.
// Absent fields are left unchanged; the name is immutable.
type UpdateUserRequest struct {
	Email    *string  `json:"email,omitempty"`
	Password *string  `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// CreateRoomRequest is the request body for opening a room
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// JoinRoomRequest is the request body for joining a room by name
type JoinRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateRoomRequest is the request body for patching a room.
// Absent fields are left unchanged; seats are not patchable.
type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Status   *string `json:"status,omitempty"`
}
