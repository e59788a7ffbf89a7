package user

import (
	"context"
	"errors"
	"testing"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/user"
	"authflow/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	SESSION_TOKEN = "test-session-token"
)

type testSessionSuite struct {
	suite.Suite
	pool              *pgxpool.Pool
	userRepository    *PgxUserRepository
	sessionRepository *PgxSessionRepository
}

func (suite *testSessionSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.userRepository = NewPgxRepository(suite.pool)
	suite.sessionRepository = NewPgxSessionRepository(suite.pool)
}

func (suite *testSessionSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSessionSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxSessionRepository(t *testing.T) {
	suite.Run(t, new(testSessionSuite))
}

func (s *testSessionSuite) TestCreate() {
	activeUser := s.createActiveUser()

	err := s.createSession(activeUser.ID, SESSION_TOKEN)
	u, ok := s.getUserByToken(user.SessionToken(SESSION_TOKEN))
	s.Nil(err)
	s.True(ok)
	s.Equal(activeUser.ID, u.ID)
}

func (s *testSessionSuite) TestDeleteSuccess() {
	activeUser := s.createActiveUser()
	s.Nil(s.createSession(activeUser.ID, SESSION_TOKEN))

	userID, err := s.sessionRepository.Delete(context.Background(), user.SessionToken(SESSION_TOKEN))
	s.Nil(err)
	s.Equal(activeUser.ID, userID)
	_, ok := s.getUserByToken(user.SessionToken(SESSION_TOKEN))
	s.False(ok)
}

func (s *testSessionSuite) TestDeleteUnknownToken() {
	_, err := s.sessionRepository.Delete(context.Background(), user.SessionToken("unknown"))
	s.True(errors.Is(err, user.ErrSessionDoesNotExist))
}

func (s *testSessionSuite) TestDeleteAllForUser() {
	activeUser := s.createActiveUser()
	s.Nil(s.createSession(activeUser.ID, "token-1"))
	s.Nil(s.createSession(activeUser.ID, "token-2"))

	count, err := s.sessionRepository.DeleteAllForUser(context.Background(), activeUser.ID)
	s.Nil(err)
	s.Equal(int64(2), count)

	for _, token := range []string{"token-1", "token-2"} {
		_, ok := s.getUserByToken(user.SessionToken(token))
		s.False(ok)
	}

	count, err = s.sessionRepository.DeleteAllForUser(context.Background(), activeUser.ID)
	s.Nil(err)
	s.Equal(int64(0), count)
}

func (s *testSessionSuite) createActiveUser() user.User {
	s.T().Helper()
	u, err := s.userRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			CreatedAt:    NOW,
			ActivatedAt:  c.NewOptional(NOW, true),
		},
	)
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u
}

func (s *testSessionSuite) createSession(userID user.ID, token string) error {
	return s.sessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{
			UserID:    userID,
			Token:     user.SessionToken(token),
			CreatedAt: NOW,
		},
	)
}

func (s *testSessionSuite) getUserByToken(token user.SessionToken) (user.User, bool) {
	s.T().Helper()
	u, err := s.sessionRepository.GetUserByToken(context.Background(), token)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return u, false
	}
	if err != nil {
		s.FailNowf("could not get user by session token", "err: %v", err)
	}
	return u, true
}
