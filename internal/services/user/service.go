package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/clock"
	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/storage"
)

// Errors
var (
	// ErrInvalidCredentials covers both unknown names and wrong passwords,
	// so a login failure does not reveal whether the account exists
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UpdatePatch carries the mutable user fields. Nil pointers mean
// "leave unchanged". The name is immutable and has no patch field.
type UpdatePatch struct {
	Email    *string
	Password *string
	Roles    []string
}

// Service handles user accounts: registration, login and account
// management. Role changes require the admin role; other mutations are
// allowed for the account owner or an admin.
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	hasher   *credential.Hasher
	identity *identity.Service
}

// New creates a new user Service
func New(storage storage.Storage, clk clock.Clock, hasher *credential.Hasher, identity *identity.Service) *Service {
	return &Service{
		storage:  storage,
		clock:    clk,
		hasher:   hasher,
		identity: identity,
	}
}

// Register creates a user account. The roles argument is optional; an
// empty slice gets the default role set.
func (s *Service) Register(ctx context.Context, name, email, password string, roles []string) (*model.User, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name", model.ErrMissingField)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email", model.ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", model.ErrMissingField)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		roles = model.DefaultRoles()
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness of name and email is decided by the storage insert, not
	// by a lookup beforehand, so two concurrent registrations cannot both
	// pass a pre-check and then collide.
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password for the named account and issues a token
func (s *Service) Login(ctx context.Context, name, password string) (*model.User, string, error) {
	if name == "" {
		return nil, "", fmt.Errorf("%w: name", model.ErrMissingField)
	}
	if password == "" {
		return nil, "", fmt.Errorf("%w: password", model.ErrMissingField)
	}

	user, err := s.storage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.identity.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Get returns a user by id
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// GetByName returns a user by their unique name
func (s *Service) GetByName(ctx context.Context, name string) (*model.User, error) {
	return s.storage.GetUserByName(ctx, name)
}

// List returns all users
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}

// Update applies a patch to the target account. Callers may patch their
// own account; patching anyone else, or changing roles, requires admin.
func (s *Service) Update(ctx context.Context, caller model.Identity, id model.UserID, patch UpdatePatch) (*model.User, error) {
	if err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		if *patch.Email == "" {
			return nil, fmt.Errorf("%w: email", model.ErrMissingField)
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%w: password", model.ErrMissingField)
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if patch.Roles != nil {
		admin, err := s.callerIsAdmin(ctx, caller)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, model.ErrForbidden
		}
		user.Roles = patch.Roles
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the target account and vacates any room seat it holds.
// Rooms that were playing revert to waiting; finished rooms keep their
// status. Returns the deleted user.
func (s *Service) Delete(ctx context.Context, caller model.Identity, id model.UserID) (*model.User, error) {
	if err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	if err := s.storage.ClearSeats(ctx, id, s.clock.Now()); err != nil {
		return nil, err
	}
	return user, nil
}

// authorize admits the account owner or an admin
func (s *Service) authorize(ctx context.Context, caller model.Identity, target model.UserID) error {
	if caller.UserID == target {
		return nil
	}
	admin, err := s.callerIsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return model.ErrForbidden
	}
	return nil
}

// callerIsAdmin resolves the caller's roles from storage. Tokens carry
// no roles, so role checks always reflect the current account state.
func (s *Service) callerIsAdmin(ctx context.Context, caller model.Identity) (bool, error) {
	user, err := s.storage.GetUser(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}
