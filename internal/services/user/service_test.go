package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/mocks"
	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	identity *identity.Service
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	hasher := credential.New(bcrypt.MinCost)
	s.identity = identity.New([]byte("test-secret"), s.clock, identity.DefaultConfig())
	s.service = New(s.storage, s.clock, hasher, s.identity)
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(name, email string, roles ...string) *model.User {
	user, err := s.service.Register(s.ctx, name, email, "password123", roles)
	s.Require().NoError(err)
	return user
}

func (s *ServiceSuite) identityOf(user *model.User) model.Identity {
	return model.Identity{UserID: user.ID, Name: user.Name, Email: user.Email}
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, "alice", "alice@example.com", "password123", nil)
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.Equal("alice", user.Name)
	s.Equal("alice@example.com", user.Email)
	s.Equal(model.DefaultRoles(), user.Roles)
	s.Equal(s.clock.Now(), user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	user := s.register("alice", "alice@example.com")

	s.NotEmpty(user.PasswordHash)
	s.NotEqual("password123", user.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPersistsUser() {
	user := s.register("alice", "alice@example.com")

	stored, err := s.storage.GetUserByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, stored.ID)
}

func (s *ServiceSuite) TestRegisterWithExplicitRoles() {
	user := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)
	s.True(user.IsAdmin())
}

func (s *ServiceSuite) TestRegisterFailsOnMissingFields() {
	_, err := s.service.Register(s.ctx, "", "alice@example.com", "password123", nil)
	s.ErrorIs(err, model.ErrMissingField)

	_, err = s.service.Register(s.ctx, "alice", "", "password123", nil)
	s.ErrorIs(err, model.ErrMissingField)

	_, err = s.service.Register(s.ctx, "alice", "alice@example.com", "", nil)
	s.ErrorIs(err, model.ErrMissingField)
}

func (s *ServiceSuite) TestRegisterFailsOnDuplicateName() {
	s.register("alice", "alice@example.com")

	_, err := s.service.Register(s.ctx, "alice", "other@example.com", "password123", nil)
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *ServiceSuite) TestRegisterFailsOnDuplicateEmail() {
	s.register("alice", "alice@example.com")

	_, err := s.service.Register(s.ctx, "bob", "alice@example.com", "password123", nil)
	s.ErrorIs(err, model.ErrUserExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered := s.register("alice", "alice@example.com")

	user, token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.NotEmpty(token)
}

func (s *ServiceSuite) TestLoginTokenCarriesIdentity() {
	registered := s.register("alice", "alice@example.com")

	_, token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	ident, err := s.identity.Verify(token)
	s.Require().NoError(err)
	s.Equal(registered.ID, ident.UserID)
	s.Equal("alice", ident.Name)
	s.Equal("alice@example.com", ident.Email)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	s.register("alice", "alice@example.com")

	_, _, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownName() {
	_, _, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsOnMissingFields() {
	_, _, err := s.service.Login(s.ctx, "", "password123")
	s.ErrorIs(err, model.ErrMissingField)

	_, _, err = s.service.Login(s.ctx, "alice", "")
	s.ErrorIs(err, model.ErrMissingField)
}

// Lookup tests

func (s *ServiceSuite) TestGetAndGetByName() {
	user := s.register("alice", "alice@example.com")

	byID, err := s.service.Get(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Name, byID.Name)

	byName, err := s.service.GetByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestList() {
	s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")

	users, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}

// Update tests

func (s *ServiceSuite) TestUpdateOwnEmail() {
	user := s.register("alice", "alice@example.com")

	email := "new@example.com"
	updated, err := s.service.Update(s.ctx, s.identityOf(user), user.ID, UpdatePatch{Email: &email})
	s.Require().NoError(err)
	s.Equal("new@example.com", updated.Email)
	s.Equal("alice", updated.Name)
}

func (s *ServiceSuite) TestUpdateOwnPasswordRehashes() {
	user := s.register("alice", "alice@example.com")

	password := "newpassword"
	updated, err := s.service.Update(s.ctx, s.identityOf(user), user.ID, UpdatePatch{Password: &password})
	s.Require().NoError(err)
	s.NotEqual(user.PasswordHash, updated.PasswordHash)

	_, _, err = s.service.Login(s.ctx, "alice", "newpassword")
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateBumpsUpdatedAt() {
	user := s.register("alice", "alice@example.com")
	s.clock.Advance(time.Hour)

	email := "new@example.com"
	updated, err := s.service.Update(s.ctx, s.identityOf(user), user.ID, UpdatePatch{Email: &email})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), updated.UpdatedAt)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (s *ServiceSuite) TestUpdateOtherUserForbidden() {
	alice := s.register("alice", "alice@example.com")
	bob := s.register("bob", "bob@example.com")

	email := "hijacked@example.com"
	_, err := s.service.Update(s.ctx, s.identityOf(alice), bob.ID, UpdatePatch{Email: &email})
	s.ErrorIs(err, model.ErrForbidden)
}

func (s *ServiceSuite) TestUpdateOtherUserAsAdmin() {
	admin := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)
	bob := s.register("bob", "bob@example.com")

	email := "corrected@example.com"
	updated, err := s.service.Update(s.ctx, s.identityOf(admin), bob.ID, UpdatePatch{Email: &email})
	s.Require().NoError(err)
	s.Equal("corrected@example.com", updated.Email)
}

func (s *ServiceSuite) TestUpdateRolesRequiresAdmin() {
	alice := s.register("alice", "alice@example.com")

	_, err := s.service.Update(s.ctx, s.identityOf(alice), alice.ID, UpdatePatch{
		Roles: []string{model.RoleUser, model.RoleAdmin},
	})
	s.ErrorIs(err, model.ErrForbidden)
}

func (s *ServiceSuite) TestUpdateRolesAsAdmin() {
	admin := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)
	alice := s.register("alice", "alice@example.com")

	updated, err := s.service.Update(s.ctx, s.identityOf(admin), alice.ID, UpdatePatch{
		Roles: []string{model.RoleUser, model.RoleAdmin},
	})
	s.Require().NoError(err)
	s.True(updated.IsAdmin())
}

func (s *ServiceSuite) TestUpdateEmailConflict() {
	alice := s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")

	email := "bob@example.com"
	_, err := s.service.Update(s.ctx, s.identityOf(alice), alice.ID, UpdatePatch{Email: &email})
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *ServiceSuite) TestUpdateEmptyEmailRejected() {
	alice := s.register("alice", "alice@example.com")

	email := ""
	_, err := s.service.Update(s.ctx, s.identityOf(alice), alice.ID, UpdatePatch{Email: &email})
	s.ErrorIs(err, model.ErrMissingField)
}

func (s *ServiceSuite) TestUpdateNotFound() {
	admin := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)

	email := "ghost@example.com"
	_, err := s.service.Update(s.ctx, s.identityOf(admin), "nonexistent", UpdatePatch{Email: &email})
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Delete tests

func (s *ServiceSuite) TestDeleteOwnAccount() {
	alice := s.register("alice", "alice@example.com")

	deleted, err := s.service.Delete(s.ctx, s.identityOf(alice), alice.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, deleted.ID)

	_, err = s.service.Get(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestDeleteOtherUserForbidden() {
	alice := s.register("alice", "alice@example.com")
	bob := s.register("bob", "bob@example.com")

	_, err := s.service.Delete(s.ctx, s.identityOf(alice), bob.ID)
	s.ErrorIs(err, model.ErrForbidden)
}

func (s *ServiceSuite) TestDeleteOtherUserAsAdmin() {
	admin := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)
	bob := s.register("bob", "bob@example.com")

	_, err := s.service.Delete(s.ctx, s.identityOf(admin), bob.ID)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestDeleteVacatesSeats() {
	alice := s.register("alice", "alice@example.com")
	bob := s.register("bob", "bob@example.com")

	room := &model.Room{
		ID:        "room-1",
		Name:      "arena",
		Status:    model.RoomStatusWaiting,
		Player1:   &alice.ID,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.CreateRoom(s.ctx, room))
	_, err := s.storage.ClaimSeat(s.ctx, room.ID, bob.ID, s.clock.Now())
	s.Require().NoError(err)

	_, err = s.service.Delete(s.ctx, s.identityOf(bob), bob.ID)
	s.Require().NoError(err)

	stored, err := s.storage.GetRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Nil(stored.Player2)
	s.Equal(model.RoomStatusWaiting, stored.Status)
}

func (s *ServiceSuite) TestDeleteNotFound() {
	admin := s.register("root", "root@example.com", model.RoleUser, model.RoleAdmin)

	_, err := s.service.Delete(s.ctx, s.identityOf(admin), "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}
