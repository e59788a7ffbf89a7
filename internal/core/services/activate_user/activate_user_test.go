package activateuser

import (
	"context"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	uow "authflow/internal/core/domain/unit_of_work"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL            = c.Email("test@test.test")
	PASSWORD_HASH    = user.PasswordHash("test-password-hash")
	ACTIVATION_TOKEN = user.ActivationToken("test-activation-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger  *logging.FakeLogger
	Uow     *uow.FakeUnitOfWork
	Service services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Uow = uow.NewFakeUnitOfWork()
	suite.Service = New(
		suite.Logger,
		suite.Uow,
		func() time.Time { return NOW },
	)
}

func TestActivateUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccessUserActivated() {
	inactiveUser := s.createInactiveUser()

	result, err := s.Service.Run(context.Background(), Input{ActivationToken: ACTIVATION_TOKEN})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(inactiveUser.ID, result.User.ID)
	assert.True(result.User.IsActive())
	assert.Equal(NOW, result.User.ActivatedAt.Value)
	assert.False(result.User.ActivationToken.IsPresent)
	assert.True(s.Uow.Context.WasCommitCalled)
}

func (s *testSuite) TestInvalidToken() {
	s.createInactiveUser()

	_, err := s.Service.Run(context.Background(), Input{ActivationToken: "invalid"})

	assert := s.Require()
	assert.ErrorIs(err, user.ErrInvalidActivationToken)
	assert.False(s.Uow.Context.WasCommitCalled)
}

func (s *testSuite) TestTokenCannotBeReused() {
	s.createInactiveUser()
	ctx := context.Background()

	_, err := s.Service.Run(ctx, Input{ActivationToken: ACTIVATION_TOKEN})
	s.Require().Nil(err)
	_, err = s.Service.Run(ctx, Input{ActivationToken: ACTIVATION_TOKEN})

	s.Require().ErrorIs(err, user.ErrInvalidActivationToken)
}

func (s *testSuite) TestEmptyToken() {
	_, err := s.Service.Run(context.Background(), Input{})
	s.Require().ErrorIs(err, user.ErrInvalidActivationToken)
}

func (s *testSuite) createInactiveUser() user.User {
	u, err := s.Uow.Context.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:           EMAIL,
		PasswordHash:    PASSWORD_HASH,
		CreatedAt:       NOW,
		ActivationToken: c.NewOptional(ACTIVATION_TOKEN, true),
	})
	s.Require().Nil(err)
	s.Require().False(u.IsActive())
	return u
}
