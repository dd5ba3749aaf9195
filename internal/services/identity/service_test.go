package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fourline/gameroom/internal/dependencies/mocks"
	"github.com/fourline/gameroom/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	user    *model.User
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New([]byte("test-secret"), s.clock, DefaultConfig())
	s.user = &model.User{
		ID:    "u-1",
		Name:  "alice",
		Email: "alice@example.com",
	}
}

func (s *ServiceSuite) TestIssueAndVerify() {
	token, err := s.service.Issue(s.user)
	s.Require().NoError(err)
	s.NotEmpty(token)

	identity, err := s.service.Verify(token)
	s.Require().NoError(err)
	s.Equal(model.UserID("u-1"), identity.UserID)
	s.Equal("alice", identity.Name)
	s.Equal("alice@example.com", identity.Email)
}

func (s *ServiceSuite) TestVerifyFailsWithMalformedToken() {
	_, err := s.service.Verify("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithWrongKey() {
	token, err := s.service.Issue(s.user)
	s.Require().NoError(err)

	other := New([]byte("different-secret"), s.clock, DefaultConfig())
	_, err = other.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyAcceptsWithinExpiry() {
	token, err := s.service.Issue(s.user)
	s.Require().NoError(err)

	s.clock.Advance(59 * time.Minute)

	_, err = s.service.Verify(token)
	s.NoError(err)
}

func (s *ServiceSuite) TestVerifyFailsAfterExpiry() {
	token, err := s.service.Issue(s.user)
	s.Require().NoError(err)

	s.clock.Advance(61 * time.Minute)

	_, err = s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestCustomTTL() {
	svc := New([]byte("test-secret"), s.clock, Config{TokenTTL: 5 * time.Minute})

	token, err := svc.Issue(s.user)
	s.Require().NoError(err)

	s.clock.Advance(6 * time.Minute)

	_, err = svc.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}
