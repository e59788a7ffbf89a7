package logout

import (
	"context"
	"errors"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
	SESSION_TOKEN = user.SessionToken("test-session-token")
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
	suite.Service = New(
		suite.Logger,
		suite.SessionRepository,
		suite.SessionEventPublisher,
	)
}

func TestLogOutService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUserAndSession()

	_, err := s.Service.Run(context.Background(), Input{Token: SESSION_TOKEN})

	s.Nil(err)
	s.False(s.sessionExists(SESSION_TOKEN))
	s.Equal(
		[]user.FakeSessionEvent{{UserID: u.ID, Kind: user.SessionEventSignedOut}},
		s.SessionEventPublisher.Published,
	)
}

func (s *testSuite) TestErrorReturnedIfSessionTokenInvalid() {
	s.createUserAndSession()

	_, err := s.Service.Run(context.Background(), Input{Token: user.SessionToken("invalid-session-token")})

	s.True(errors.Is(err, user.ErrSessionDoesNotExist))
	s.True(s.sessionExists(SESSION_TOKEN))
	s.Empty(s.SessionEventPublisher.Published)
}

func (s *testSuite) createUserAndSession() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			CreatedAt:    NOW,
			ActivatedAt:  c.NewOptional(NOW, true),
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	s.True(u.IsActive())

	err = s.SessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{
			UserID:    u.ID,
			Token:     SESSION_TOKEN,
			CreatedAt: NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	s.True(s.sessionExists(SESSION_TOKEN))
	return u
}

func (s *testSuite) sessionExists(token user.SessionToken) bool {
	s.T().Helper()
	_, err := s.SessionRepository.GetUserByToken(context.Background(), token)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return false
	}
	if err != nil {
		s.FailNow(err.Error())
	}
	return true
}
