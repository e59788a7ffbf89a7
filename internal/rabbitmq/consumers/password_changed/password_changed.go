package passwordchanged

import (
	"context"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	notifypasswordchanged "authflow/internal/core/services/notify_password_changed"
	"authflow/internal/rabbitmq"
	"authflow/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
		}
	}()
	return nil
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	message := &schema.PasswordChanged{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal password changed message.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		c.ack(ctx, delivery)
		return
	}

	_, err := c.service.Run(ctx, notifypasswordchanged.Input{
		Event: user.PasswordChangedEvent{UserID: user.ID(message.UserID), At: message.At},
	})
	if err != nil {
		// One more attempt for transient mail failures.
		requeue := !delivery.Redelivered
		c.log.Warning(
			ctx,
			"Could not notify about password change.",
			logging.Entry("userID", message.UserID),
			logging.Entry("requeue", requeue),
			logging.Entry("err", err),
		)
		if err := delivery.Nack(false, requeue); err != nil {
			c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
		}
		return
	}
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
