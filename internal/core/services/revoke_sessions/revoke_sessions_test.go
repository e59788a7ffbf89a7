package revokesessions

import (
	"context"
	"errors"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	"authflow/internal/core/services/auth"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	UserRepository        *user.FakeUserRepository
	SessionRepository     *user.FakeSessionRepository
	SessionEventPublisher *user.FakeSessionEventPublisher
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.SessionEventPublisher = user.NewFakeSessionEventPublisher()
	suite.Service = auth.WithAuthentication(
		suite.SessionRepository,
		New(suite.Logger, suite.SessionRepository, suite.SessionEventPublisher),
	)
}

func TestRevokeSessionsService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAllSessionsRevoked() {
	u := s.createUser()
	s.createSession(u.ID, "token-1")
	s.createSession(u.ID, "token-2")

	ctx := auth.WithToken(context.Background(), user.SessionToken("token-1"))
	result, err := s.Service.Run(ctx, Input{})

	s.Nil(err)
	s.Equal(int64(2), result.Revoked)
	s.Equal(0, s.SessionRepository.CountForUser(u.ID))
	s.Equal(
		[]user.FakeSessionEvent{{UserID: u.ID, Kind: user.SessionEventSessionsRevoked}},
		s.SessionEventPublisher.Published,
	)
}

func (s *testSuite) TestOtherUsersSessionsKept() {
	u := s.createUser()
	other := s.createUserWithEmail("other@test.test")
	s.createSession(u.ID, "token-1")
	s.createSession(other.ID, "token-2")

	ctx := auth.WithToken(context.Background(), user.SessionToken("token-1"))
	_, err := s.Service.Run(ctx, Input{})

	s.Nil(err)
	s.Equal(1, s.SessionRepository.CountForUser(other.ID))
}

func (s *testSuite) TestUnauthenticated() {
	u := s.createUser()
	s.createSession(u.ID, "token-1")

	_, err := s.Service.Run(context.Background(), Input{})

	s.True(errors.Is(err, user.ErrUserDoesNotExist))
	s.Equal(1, s.SessionRepository.CountForUser(u.ID))
	s.Empty(s.SessionEventPublisher.Published)
}

func (s *testSuite) TestRepositoryError() {
	u := s.createUser()
	s.createSession(u.ID, "token-1")
	s.SessionRepository.ReturnError = true

	ctx := auth.WithToken(context.Background(), user.SessionToken("token-1"))
	_, err := s.Service.Run(ctx, Input{})

	s.NotNil(err)
	s.Empty(s.SessionEventPublisher.Published)
	s.Equal(1, s.Logger.CountByLevel(logging.ERROR))
}

func (s *testSuite) createUser() user.User {
	return s.createUserWithEmail(EMAIL)
}

func (s *testSuite) createUserWithEmail(email string) user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(email),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			CreatedAt:    NOW,
			ActivatedAt:  c.NewOptional(NOW, true),
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}

func (s *testSuite) createSession(userID user.ID, token string) {
	s.T().Helper()
	err := s.SessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{UserID: userID, Token: user.SessionToken(token), CreatedAt: NOW},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
}
