package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Eursukkul/hotel-reservation/internal/dto"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventConsumer prints reservation events as they arrive from the broker.
type EventConsumer struct {
	out io.Writer
	log *zap.Logger
}

func NewEventConsumer(out io.Writer, log *zap.Logger) *EventConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventConsumer{out: out, log: log}
}

// Run handles deliveries until ctx is done or msgs is closed.
func (ec *EventConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				ec.log.Info("delivery channel closed, stopping consumer")
				return nil
			}
			ec.handleMessage(msg)
		}
	}
}

func (ec *EventConsumer) handleMessage(msg amqp.Delivery) {
	var event dto.ReservationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		ec.log.Warn("failed to unmarshal reservation event", zap.Error(err))
		msg.Nack(false, false)
		return
	}
	if event.Type == "" {
		event.Type = msg.RoutingKey
	}

	if _, err := fmt.Fprintln(ec.out, formatEvent(event)); err != nil {
		ec.log.Error("failed to write reservation event", zap.String("reservation_id", event.ReservationID), zap.Error(err))
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}

func formatEvent(e dto.ReservationEvent) string {
	line := fmt.Sprintf("%s %s %s customer=%s hotel=%s room=%s %s..%s",
		e.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		e.Type,
		e.ReservationID,
		e.CustomerName,
		e.HotelName,
		e.RoomNumber,
		e.CheckInDate,
		e.CheckOutDate,
	)
	if e.Type == dto.EventReservationCreated && !e.RoomReserved {
		line += " (room not reserved)"
	}
	return line
}
