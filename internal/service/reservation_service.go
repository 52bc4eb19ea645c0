package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/hotel-reservation/internal/dto"
	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRoomUnavailable     = errors.New("room could not be reserved")
)

// Publisher sends reservation events to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// CreateOutcome reports both steps of CreateReservation. Key is the record
// key of the persisted reservation, empty when nothing was written.
// RoomReserved and Reason carry the hotel's answer.
type CreateOutcome struct {
	Key          string
	RoomReserved bool
	Reason       error
}

type ReservationService interface {
	CreateReservation(ctx context.Context, reservation *models.Reservation) (CreateOutcome, error)
	CancelReservation(ctx context.Context, reservationID string) (bool, error)
	GetReservation(ctx context.Context, reservationID string) (models.ReservationSnapshot, error)
}

type ReservationOption func(*reservationService)

// WithStrictReservations makes CreateReservation refuse to persist a
// reservation whose room the hotel did not reserve.
func WithStrictReservations(strict bool) ReservationOption {
	return func(s *reservationService) { s.strict = strict }
}

// WithPublisher enables reservation events.
func WithPublisher(p Publisher) ReservationOption {
	return func(s *reservationService) { s.publisher = p }
}

type reservationService struct {
	store     repository.RecordStore
	log       *zap.Logger
	publisher Publisher
	strict    bool
	now       func() time.Time
}

func NewReservationService(store repository.RecordStore, log *zap.Logger, opts ...ReservationOption) ReservationService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &reservationService{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReservation reserves the room on the hotel and then writes the
// reservation snapshot. The two steps are not atomic. By default the
// snapshot is written even when the hotel refused the room; the outcome
// says so. In strict mode a refusal returns ErrRoomUnavailable and nothing
// is written.
func (s *reservationService) CreateReservation(ctx context.Context, r *models.Reservation) (CreateOutcome, error) {
	log := s.log.With(
		zap.String("reservation_id", r.ID),
		zap.String("hotel", r.Hotel.Name),
		zap.String("room", r.RoomNumber),
	)

	var out CreateOutcome
	if err := r.Hotel.Reserve(r.RoomNumber, r.Customer.Name, r.CheckIn, r.CheckOut); err != nil {
		out.Reason = err
		if s.strict {
			log.Warn("reservation rejected", zap.Error(err))
			return out, fmt.Errorf("%w: %w", ErrRoomUnavailable, err)
		}
		log.Warn("room not reserved on hotel, persisting reservation anyway", zap.Error(err))
	} else {
		out.RoomReserved = true
	}

	snap := r.Snapshot()
	if err := s.store.Create(ctx, r.ID, snap.Fields()); err != nil {
		log.Error("failed to persist reservation", zap.Error(err))
		return out, fmt.Errorf("persist reservation %s: %w", r.ID, err)
	}
	out.Key = r.ID
	log.Info("reservation created", zap.Bool("room_reserved", out.RoomReserved))

	s.publish(ctx, dto.EventReservationCreated, snap, out.RoomReserved)
	return out, nil
}

// CancelReservation removes the reservation record. A missing record is not
// an error; the bool reports whether a record was removed. A record that
// cannot be decoded is still removed. The hotel's own reservation entry is
// left alone.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID string) (bool, error) {
	log := s.log.With(zap.String("reservation_id", reservationID))

	snap, err := s.GetReservation(ctx, reservationID)
	if err != nil {
		if !errors.Is(err, ErrReservationNotFound) {
			log.Warn("reservation record unreadable, deleting anyway", zap.Error(err))
		}
		snap = models.ReservationSnapshot{ReservationID: reservationID}
	}

	if err := s.store.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("no reservation record to cancel")
			return false, nil
		}
		return false, fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}
	log.Info("reservation cancelled")

	s.publish(ctx, dto.EventReservationCancelled, snap, false)
	return true, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (models.ReservationSnapshot, error) {
	var snap models.ReservationSnapshot
	fields, err := s.store.Read(ctx, reservationID)
	if errors.Is(err, repository.ErrNotFound) {
		return snap, fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
	}
	if err != nil {
		return snap, fmt.Errorf("reservation %s: %w", reservationID, err)
	}
	if err := fields.Decode(&snap); err != nil {
		return snap, fmt.Errorf("reservation %s: %w", reservationID, err)
	}
	return snap, nil
}

// publish is best effort; a broker failure never fails the operation.
func (s *reservationService) publish(ctx context.Context, eventType string, snap models.ReservationSnapshot, roomReserved bool) {
	if s.publisher == nil {
		return
	}
	event := dto.ReservationEvent{
		Type:          eventType,
		ReservationID: snap.ReservationID,
		CustomerName:  snap.CustomerName,
		HotelName:     snap.HotelName,
		RoomNumber:    snap.RoomNumber,
		CheckInDate:   snap.CheckInDate,
		CheckOutDate:  snap.CheckOutDate,
		RoomReserved:  roomReserved,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		s.log.Warn("failed to publish reservation event", zap.String("type", eventType), zap.Error(err))
	}
}
