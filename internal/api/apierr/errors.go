package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/services/room"
	"github.com/fourline/gameroom/internal/services/user"
)

// ErrorResponse is the wire shape for every error. The error field
// repeats the HTTP status code so clients can branch on the body alone.
type ErrorResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// httpError combines an HTTP status with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.status, Message: he.message})
}

// toHTTPError converts an error to an httpError. Unrecognised errors
// map to a generic 500 so internal details never reach the client.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation and conflicts on input
	case errors.Is(err, model.ErrMissingField):
		return &httpError{http.StatusBadRequest, err.Error()}
	case errors.Is(err, model.ErrSelfJoin):
		return &httpError{http.StatusBadRequest, "cannot join a room you created"}
	case errors.Is(err, room.ErrInvalidStatus):
		return &httpError{http.StatusBadRequest, err.Error()}
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusBadRequest, "name or email already taken"}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusBadRequest, "room name already taken"}

	// Authentication
	case errors.Is(err, user.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "invalid name or password"}
	case errors.Is(err, room.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "invalid room password"}
	case errors.Is(err, identity.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "invalid or expired token"}

	// Authorization
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, "insufficient permissions"}

	// Lookups
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "user not found"}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, "room not found"}

	// Seat contention
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, "room is full"}

	default:
		return &httpError{http.StatusInternalServerError, "internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "authentication required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "internal server error"}
}
