package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("name or email already taken")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room name already taken")
	ErrRoomFull     = errors.New("second seat already taken")
	ErrSelfJoin     = errors.New("creator cannot take the second seat")

	// Input and authorization errors
	ErrMissingField = errors.New("required field missing")
	ErrForbidden    = errors.New("operation not permitted for this identity")
)
