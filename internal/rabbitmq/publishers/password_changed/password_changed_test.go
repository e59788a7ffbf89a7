package passwordchanged

import (
	"context"
	"errors"
	"testing"
	"time"

	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type published struct {
	Exchange string
	Key      string
	Msg      amqp091.Publishing
}

type fakeChannel struct {
	Published   []published
	ReturnError bool
}

func (f *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if f.ReturnError {
		return errors.New("channel closed")
	}
	f.Published = append(f.Published, published{Exchange: exchange, Key: key, Msg: msg})
	return nil
}

func TestPublishPasswordChanged(t *testing.T) {
	ch := &fakeChannel{}
	p := NewRabbitMQ(logging.NewFakeLogger(), ch, "password_changed")
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishPasswordChanged(context.Background(), user.PasswordChangedEvent{UserID: 7, At: at})

	require.Nil(t, err)
	require.Len(t, ch.Published, 1)
	require.Equal(t, "", ch.Published[0].Exchange)
	require.Equal(t, "password_changed", ch.Published[0].Key)
	require.Equal(t, "application/json", ch.Published[0].Msg.ContentType)
	require.Equal(t, amqp091.Persistent, ch.Published[0].Msg.DeliveryMode)
	require.JSONEq(t, `{"userId":7,"at":"2024-01-01T12:00:00Z"}`, string(ch.Published[0].Msg.Body))
}

func TestPublishPasswordChangedError(t *testing.T) {
	ch := &fakeChannel{ReturnError: true}
	log := logging.NewFakeLogger()
	p := NewRabbitMQ(log, ch, "password_changed")

	err := p.PublishPasswordChanged(context.Background(), user.PasswordChangedEvent{UserID: 7, At: time.Now()})

	require.NotNil(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
