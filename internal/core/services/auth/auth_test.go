package auth

import (
	"context"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type input struct {
	User user.User
}

func (i input) WithAuthenticatedUser(u user.User) Input {
	i.User = u
	return i
}

type stubService struct {
	Received []input
}

func (s *stubService) Run(ctx context.Context, in input) (user.ID, error) {
	s.Received = append(s.Received, in)
	return in.User.ID, nil
}

const TOKEN = user.SessionToken("session-token")

type testAuthSuite struct {
	suite.Suite
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	Inner             *stubService
	Service           services.Service[input, user.ID]
	User              user.User
}

func (suite *testAuthSuite) SetupTest() {
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.Inner = &stubService{}
	suite.Service = WithAuthentication[input, user.ID](suite.SessionRepository, suite.Inner)

	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("test@test.test"),
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	suite.User = u
	suite.Require().Nil(suite.SessionRepository.Create(context.Background(), user.CreateSessionInput{
		UserID: u.ID,
		Token:  TOKEN,
	}))
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(testAuthSuite))
}

func (suite *testAuthSuite) TestAuthenticated() {
	id, err := suite.Service.Run(WithToken(context.Background(), TOKEN), input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, id)
	assert.Len(suite.Inner.Received, 1)
	assert.Equal(suite.User.Email, suite.Inner.Received[0].User.Email)
}

func (suite *testAuthSuite) TestNoToken() {
	_, err := suite.Service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.Empty(suite.Inner.Received)
}

func (suite *testAuthSuite) TestUnknownToken() {
	_, err := suite.Service.Run(WithToken(context.Background(), "unknown"), input{})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.Empty(suite.Inner.Received)
}
