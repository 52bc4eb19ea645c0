package models

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"
)

// DefaultRooms is the room inventory a hotel gets unless WithRooms is used.
var DefaultRooms = []string{"101", "102", "103"}

// ReservationRecord is a hotel's own entry for one occupied room.
type ReservationRecord struct {
	RoomNumber string
	GuestName  string
	CheckIn    time.Time
	CheckOut   time.Time
}

// Hotel owns a fixed room inventory and the in-memory reservation map keyed
// by room number. It is not safe for concurrent use.
type Hotel struct {
	Name     string
	Location string
	Phone    string

	rooms        []string
	reservations map[string]ReservationRecord
	log          *zap.Logger
}

type HotelOption func(*Hotel)

// WithRooms replaces the default room inventory. Duplicates are dropped.
func WithRooms(rooms ...string) HotelOption {
	return func(h *Hotel) {
		h.rooms = h.rooms[:0]
		for _, r := range rooms {
			if r != "" && !slices.Contains(h.rooms, r) {
				h.rooms = append(h.rooms, r)
			}
		}
	}
}

// WithLogger sets where reservation outcomes are reported.
func WithLogger(log *zap.Logger) HotelOption {
	return func(h *Hotel) {
		if log != nil {
			h.log = log
		}
	}
}

func NewHotel(name, location, phone string, opts ...HotelOption) *Hotel {
	h := &Hotel{
		Name:         name,
		Location:     location,
		Phone:        phone,
		rooms:        slices.Clone(DefaultRooms),
		reservations: make(map[string]ReservationRecord),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Rooms returns a copy of the room inventory in construction order.
func (h *Hotel) Rooms() []string {
	return slices.Clone(h.rooms)
}

func (h *Hotel) HasRoom(roomNumber string) bool {
	return slices.Contains(h.rooms, roomNumber)
}

func (h *Hotel) IsAvailable(roomNumber string) bool {
	_, taken := h.reservations[roomNumber]
	return h.HasRoom(roomNumber) && !taken
}

func (h *Hotel) Reservation(roomNumber string) (ReservationRecord, bool) {
	rec, ok := h.reservations[roomNumber]
	return rec, ok
}

// Reservations returns the current entries ordered by room number.
func (h *Hotel) Reservations() []ReservationRecord {
	out := make([]ReservationRecord, 0, len(h.reservations))
	for _, rec := range h.reservations {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out
}

// Reserve books roomNumber for guestName. The date range is checked first,
// then room existence, then availability; nothing changes unless all pass.
func (h *Hotel) Reserve(roomNumber, guestName string, checkIn, checkOut time.Time) error {
	if err := (DateRange{CheckIn: checkIn, CheckOut: checkOut}).Validate(); err != nil {
		return err
	}
	if !h.HasRoom(roomNumber) {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomNumber)
	}
	if _, taken := h.reservations[roomNumber]; taken {
		return fmt.Errorf("%w: %s", ErrRoomReserved, roomNumber)
	}
	h.reservations[roomNumber] = ReservationRecord{
		RoomNumber: roomNumber,
		GuestName:  guestName,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	return nil
}

// ReserveRoom is the reporting form of Reserve: the outcome is logged and
// collapsed to a bool.
func (h *Hotel) ReserveRoom(roomNumber, guestName string, checkIn, checkOut time.Time) bool {
	fields := []zap.Field{
		zap.String("hotel", h.Name),
		zap.String("room", roomNumber),
		zap.String("guest", guestName),
		zap.String("check_in", FormatDate(checkIn)),
		zap.String("check_out", FormatDate(checkOut)),
	}
	if err := h.Reserve(roomNumber, guestName, checkIn, checkOut); err != nil {
		h.log.Warn("room not reserved", append(fields, zap.Error(err))...)
		return false
	}
	h.log.Info("room reserved", fields...)
	return true
}

// Release removes the reservation entry for roomNumber.
func (h *Hotel) Release(roomNumber string) error {
	if len(h.reservations) == 0 {
		return fmt.Errorf("%w: %s", ErrNoReservation, roomNumber)
	}
	if _, ok := h.reservations[roomNumber]; !ok {
		return fmt.Errorf("%w: %s", ErrNoReservation, roomNumber)
	}
	delete(h.reservations, roomNumber)
	return nil
}

// CancelReservation is the reporting form of Release.
func (h *Hotel) CancelReservation(roomNumber string) bool {
	if err := h.Release(roomNumber); err != nil {
		h.log.Warn("reservation not cancelled", zap.String("hotel", h.Name), zap.String("room", roomNumber), zap.Error(err))
		return false
	}
	h.log.Info("reservation cancelled", zap.String("hotel", h.Name), zap.String("room", roomNumber))
	return true
}

// Modify replaces the hotel's contact data. All three values are required
// and the hotel is left untouched if any is missing.
func (h *Hotel) Modify(name, location, phone string) error {
	if err := ValidateHotelInfo(name, location, phone); err != nil {
		return err
	}
	h.Name, h.Location, h.Phone = name, location, phone
	return nil
}

func ValidateHotelInfo(name, location, phone string) error {
	switch {
	case name == "":
		return NewValidationError("name")
	case location == "":
		return NewValidationError("location")
	case phone == "":
		return NewValidationError("phone")
	}
	return nil
}
