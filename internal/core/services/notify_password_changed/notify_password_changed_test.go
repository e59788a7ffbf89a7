package notifypasswordchanged

import (
	"context"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"

	"github.com/stretchr/testify/suite"
)

var NOW = time.Now().UTC()

type testSuite struct {
	suite.Suite
	UserRepository *user.FakeUserRepository
	Sender         *user.FakePasswordChangedSender
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.UserRepository = user.NewFakeUserRepository()
	suite.Sender = user.NewFakePasswordChangedSender()
	suite.Service = New(logging.NewFakeLogger(), suite.UserRepository, suite.Sender)
}

func TestNotifyPasswordChangedService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestNoticeIsSent() {
	u, err := s.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("a@x.com"),
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), Input{Event: user.PasswordChangedEvent{UserID: u.ID, At: NOW}})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.Sender.SentTo, 1)
	assert.Equal(u.Email, s.Sender.SentTo[0].Email)
}

func (s *testSuite) TestUnknownUserIsSkipped() {
	_, err := s.Service.Run(context.Background(), Input{Event: user.PasswordChangedEvent{UserID: 42, At: NOW}})

	assert := s.Require()
	assert.Nil(err)
	assert.Empty(s.Sender.SentTo)
}

func (s *testSuite) TestSenderError() {
	u, err := s.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("a@x.com"),
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)
	s.Sender.ReturnError = true

	_, err = s.Service.Run(context.Background(), Input{Event: user.PasswordChangedEvent{UserID: u.ID, At: NOW}})

	s.Require().NotNil(err)
}
