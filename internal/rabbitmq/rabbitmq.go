package rabbitmq

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"authflow/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection and redials when the broker drops it.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, log: log}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.Connection = conn
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

// Channel returns a channel that is recreated after an unexpected close.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go c.watchChannel(channel)
	return channel, nil
}

func (c *Connection) watchChannel(channel *Channel) {
	ctx := context.Background()
	for {
		reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
		if !ok || channel.IsClosed() {
			channel.Close()
			return
		}

		c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)

			ch, err := c.Connection.Channel()
			if err == nil {
				c.log.Info(ctx, "RabbitMQ channel recreated.")
				channel.Channel = ch
				break
			}
			c.log.Error(ctx, "RabbitMQ channel recreate failed.", logging.Entry("err", err))
		}
	}
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close has been called explicitly.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}
	atomic.StoreInt32(&ch.closed, 1)
	return ch.Channel.Close()
}

// DeclareDurableQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareDurableQueue(name string) error {
	_, err := ch.Channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Consume keeps the returned delivery channel open across channel recreation
// until the channel is closed explicitly.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	return ch.relay(queue, func() (<-chan amqp.Delivery, error) {
		return ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	}), nil
}

func (ch *Channel) relay(queue string, consume func() (<-chan amqp.Delivery, error)) <-chan amqp.Delivery {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for {
			d, err := consume()
			if err != nil {
				if ch.IsClosed() {
					ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
					return
				}
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			time.Sleep(reconnectDelay)
			if ch.IsClosed() {
				ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				return
			}
		}
	}()

	return deliveries
}
