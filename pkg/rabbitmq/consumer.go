package rabbitmq

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Subscription names the queue a Consumer reads and the routing keys bound
// to it on ExchangeName.
type Subscription struct {
	Queue       string
	BindingKeys []string
	// Prefetch caps unacknowledged deliveries; 0 leaves it unlimited.
	Prefetch int
}

// ReservationEvents is the durable queue the events tail reads.
func ReservationEvents() Subscription {
	return Subscription{
		Queue:       "hotelres.reservation-events",
		BindingKeys: []string{"reservation.*"},
		Prefetch:    10,
	}
}

func (s Subscription) validate() error {
	if s.Queue == "" {
		return errors.New("rabbitmq subscription: queue is required")
	}
	if len(s.BindingKeys) == 0 {
		return fmt.Errorf("rabbitmq subscription %s: at least one binding key is required", s.Queue)
	}
	if s.Prefetch < 0 {
		return fmt.Errorf("rabbitmq subscription %s: negative prefetch", s.Queue)
	}
	return nil
}

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	sub     Subscription
	log     *zap.Logger
}

func NewConsumer(url string, sub Subscription, log *zap.Logger) (*Consumer, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	c := &Consumer{conn: conn, channel: ch, sub: sub, log: log.With(zap.String("queue", sub.Queue))}
	if err := c.declare(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) declare() error {
	if err := c.channel.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	q, err := c.channel.QueueDeclare(c.sub.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	for _, key := range c.sub.BindingKeys {
		if err := c.channel.QueueBind(q.Name, key, ExchangeName, false, nil); err != nil {
			return fmt.Errorf("rabbitmq queue bind %s: %w", key, err)
		}
	}
	if c.sub.Prefetch > 0 {
		if err := c.channel.Qos(c.sub.Prefetch, 0, false); err != nil {
			return fmt.Errorf("rabbitmq qos: %w", err)
		}
	}
	c.log.Debug("subscription declared", zap.Strings("binding_keys", c.sub.BindingKeys))
	return nil
}

// Consume starts delivery with manual acknowledgement.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(c.sub.Queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	c.log.Info("consuming")
	return msgs, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			c.log.Warn("rabbitmq channel close", zap.Error(err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			c.log.Warn("rabbitmq connection close", zap.Error(err))
		}
	}
}
