package consumers

import (
	"context"

	"authflow/internal/app/deps"
	"authflow/internal/app/services"
	dl "authflow/internal/core/domain/logging"
	passwordchanged "authflow/internal/rabbitmq/consumers/password_changed"
)

func initPasswordChangedConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordChangedQueue
	if err := rabbitmqChannel.DeclareDurableQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	passwordChangedConsumer := passwordchanged.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.NotifyPasswordChanged,
	)
	if err = passwordChangedConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownPasswordChangedConsumer := initPasswordChangedConsumer(deps, services)

	return func() {
		shutdownPasswordChangedConsumer()
	}
}
