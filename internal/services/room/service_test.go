package room

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/fourline/gameroom/internal/credential"
	"github.com/fourline/gameroom/internal/dependencies/mocks"
	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	hasher  *credential.Hasher
	service *Service
	ctx     context.Context

	alice model.Identity
	bob   model.Identity
	carol model.Identity
	admin model.Identity
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.hasher = credential.New(bcrypt.MinCost)
	s.service = New(s.storage, s.clock, s.hasher)
	s.ctx = context.Background()

	s.alice = s.seedUser("alice", model.DefaultRoles())
	s.bob = s.seedUser("bob", model.DefaultRoles())
	s.carol = s.seedUser("carol", model.DefaultRoles())
	s.admin = s.seedUser("root", []string{model.RoleUser, model.RoleAdmin})
}

func (s *ServiceSuite) seedUser(name string, roles []string) model.Identity {
	user := &model.User{
		ID:           model.UserID("user-" + name),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Roles:        roles,
		CreatedAt:    s.clock.Now(),
		UpdatedAt:    s.clock.Now(),
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return model.Identity{UserID: user.ID, Name: user.Name, Email: user.Email}
}

func (s *ServiceSuite) createRoom(owner model.Identity, name string) *model.Room {
	room, err := s.service.Create(s.ctx, owner, name, "roompass")
	s.Require().NoError(err)
	return room
}

// Create tests

func (s *ServiceSuite) TestCreateSeatsOwner() {
	room := s.createRoom(s.alice, "arena")

	s.NotEmpty(room.ID)
	s.Equal("arena", room.Name)
	s.Equal(model.RoomStatusWaiting, room.Status)
	s.Require().NotNil(room.Player1)
	s.Equal(s.alice.UserID, *room.Player1)
	s.Nil(room.Player2)
	s.Equal(s.clock.Now(), room.CreatedAt)
}

func (s *ServiceSuite) TestCreateHashesPassword() {
	room := s.createRoom(s.alice, "arena")

	s.NotEmpty(room.PasswordHash)
	s.NotEqual("roompass", room.PasswordHash)
}

func (s *ServiceSuite) TestCreatePersistsRoom() {
	room := s.createRoom(s.alice, "arena")

	stored, err := s.storage.GetRoomByName(s.ctx, "arena")
	s.Require().NoError(err)
	s.Equal(room.ID, stored.ID)
	s.Require().NotNil(stored.Player1)
	s.Equal(s.alice.UserID, *stored.Player1)
}

func (s *ServiceSuite) TestCreateFailsOnMissingFields() {
	_, err := s.service.Create(s.ctx, s.alice, "", "roompass")
	s.ErrorIs(err, model.ErrMissingField)

	_, err = s.service.Create(s.ctx, s.alice, "arena", "")
	s.ErrorIs(err, model.ErrMissingField)
}

func (s *ServiceSuite) TestCreateFailsOnDuplicateName() {
	s.createRoom(s.alice, "arena")

	_, err := s.service.Create(s.ctx, s.bob, "arena", "otherpass")
	s.ErrorIs(err, model.ErrRoomExists)
}

// Join tests

func (s *ServiceSuite) TestJoinFillsRoomAndStartsPlaying() {
	s.createRoom(s.alice, "arena")

	room, err := s.service.Join(s.ctx, s.bob, "arena", "roompass")
	s.Require().NoError(err)
	s.Require().NotNil(room.Player2)
	s.Equal(s.bob.UserID, *room.Player2)
	s.Equal(model.RoomStatusPlaying, room.Status)
}

func (s *ServiceSuite) TestJoinFailsWithWrongPassword() {
	s.createRoom(s.alice, "arena")

	_, err := s.service.Join(s.ctx, s.bob, "arena", "wrongpass")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestJoinUnknownRoomLooksLikeWrongPassword() {
	_, err := s.service.Join(s.ctx, s.bob, "nonexistent", "roompass")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestJoinFailsWhenRoomFull() {
	s.createRoom(s.alice, "arena")
	_, err := s.service.Join(s.ctx, s.bob, "arena", "roompass")
	s.Require().NoError(err)

	_, err = s.service.Join(s.ctx, s.carol, "arena", "roompass")
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ServiceSuite) TestJoinOwnRoomRejected() {
	s.createRoom(s.alice, "arena")

	_, err := s.service.Join(s.ctx, s.alice, "arena", "roompass")
	s.ErrorIs(err, model.ErrSelfJoin)
}

func (s *ServiceSuite) TestJoinIdempotentForSeatedPlayer() {
	s.createRoom(s.alice, "arena")
	_, err := s.service.Join(s.ctx, s.bob, "arena", "roompass")
	s.Require().NoError(err)

	room, err := s.service.Join(s.ctx, s.bob, "arena", "roompass")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusPlaying, room.Status)
}

func (s *ServiceSuite) TestJoinFailsOnMissingFields() {
	_, err := s.service.Join(s.ctx, s.bob, "", "roompass")
	s.ErrorIs(err, model.ErrMissingField)

	_, err = s.service.Join(s.ctx, s.bob, "arena", "")
	s.ErrorIs(err, model.ErrMissingField)
}

func (s *ServiceSuite) TestJoinConcurrentExactlyOneWinner() {
	s.createRoom(s.alice, "arena")

	const claimants = 8
	errs := make([]error, claimants)
	var wg sync.WaitGroup
	for n := 0; n < claimants; n++ {
		ident := s.seedUser(fmt.Sprintf("claimant%d", n), model.DefaultRoles())
		wg.Add(1)
		go func(n int, ident model.Identity) {
			defer wg.Done()
			_, errs[n] = s.service.Join(s.ctx, ident, "arena", "roompass")
		}(n, ident)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			s.ErrorIs(err, model.ErrRoomFull)
		}
	}
	s.Equal(1, winners)
}

// Lookup tests

func (s *ServiceSuite) TestGetAndGetByName() {
	room := s.createRoom(s.alice, "arena")

	byID, err := s.service.Get(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Equal("arena", byID.Name)

	byName, err := s.service.GetByName(s.ctx, "arena")
	s.Require().NoError(err)
	s.Equal(room.ID, byName.ID)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ServiceSuite) TestList() {
	s.createRoom(s.alice, "arena")
	s.createRoom(s.bob, "lounge")

	rooms, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

// Update tests

func (s *ServiceSuite) TestUpdateNameAsOwner() {
	room := s.createRoom(s.alice, "arena")

	name := "colosseum"
	updated, err := s.service.Update(s.ctx, s.alice, room.ID, UpdatePatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("colosseum", updated.Name)

	_, err = s.service.GetByName(s.ctx, "colosseum")
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdatePasswordRehashes() {
	room := s.createRoom(s.alice, "arena")

	password := "newpass"
	updated, err := s.service.Update(s.ctx, s.alice, room.ID, UpdatePatch{Password: &password})
	s.Require().NoError(err)
	s.NotEqual(room.PasswordHash, updated.PasswordHash)

	_, err = s.service.Join(s.ctx, s.bob, "arena", "newpass")
	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateStatus() {
	room := s.createRoom(s.alice, "arena")

	status := model.RoomStatusFinished
	updated, err := s.service.Update(s.ctx, s.alice, room.ID, UpdatePatch{Status: &status})
	s.Require().NoError(err)
	s.Equal(model.RoomStatusFinished, updated.Status)
}

func (s *ServiceSuite) TestUpdateUnknownStatusRejected() {
	room := s.createRoom(s.alice, "arena")

	status := model.RoomStatus("paused")
	_, err := s.service.Update(s.ctx, s.alice, room.ID, UpdatePatch{Status: &status})
	s.ErrorIs(err, ErrInvalidStatus)
}

func (s *ServiceSuite) TestUpdateForbiddenForNonOwner() {
	room := s.createRoom(s.alice, "arena")

	name := "hijacked"
	_, err := s.service.Update(s.ctx, s.bob, room.ID, UpdatePatch{Name: &name})
	s.ErrorIs(err, model.ErrForbidden)
}

func (s *ServiceSuite) TestUpdateAllowedForAdmin() {
	room := s.createRoom(s.alice, "arena")

	name := "moderated"
	updated, err := s.service.Update(s.ctx, s.admin, room.ID, UpdatePatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("moderated", updated.Name)
}

func (s *ServiceSuite) TestUpdateNameConflict() {
	room := s.createRoom(s.alice, "arena")
	s.createRoom(s.bob, "lounge")

	name := "lounge"
	_, err := s.service.Update(s.ctx, s.alice, room.ID, UpdatePatch{Name: &name})
	s.ErrorIs(err, model.ErrRoomExists)
}

func (s *ServiceSuite) TestUpdateNotFound() {
	name := "ghost"
	_, err := s.service.Update(s.ctx, s.admin, "nonexistent", UpdatePatch{Name: &name})
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// Delete tests

func (s *ServiceSuite) TestDeleteAsOwner() {
	room := s.createRoom(s.alice, "arena")

	deleted, err := s.service.Delete(s.ctx, s.alice, room.ID)
	s.Require().NoError(err)
	s.Equal(room.ID, deleted.ID)

	_, err = s.service.Get(s.ctx, room.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ServiceSuite) TestDeleteForbiddenForNonOwner() {
	room := s.createRoom(s.alice, "arena")

	_, err := s.service.Delete(s.ctx, s.bob, room.ID)
	s.ErrorIs(err, model.ErrForbidden)
}

func (s *ServiceSuite) TestDeleteAllowedForAdmin() {
	room := s.createRoom(s.alice, "arena")

	_, err := s.service.Delete(s.ctx, s.admin, room.ID)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestDeleteNotFound() {
	_, err := s.service.Delete(s.ctx, s.admin, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
