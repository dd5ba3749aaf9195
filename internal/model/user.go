package model

import (
	"slices"
	"time"
)

// UserID uniquely identifies a user across the system
type UserID string

// Role names recognised by authorization checks
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultRoles returns the role set assigned when a registration omits roles
func DefaultRoles() []string {
	return []string{RoleUser}
}

// User represents a registered account.
// Name is the login identity and is immutable after creation.
type User struct {
	ID           UserID
	Name         string // unique
	Email        string // unique
	PasswordHash string // bcrypt hash, never exposed over the wire
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
