package dto

import "time"

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a reservation record is written or
// removed.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	HotelName     string    `json:"hotel_name,omitempty"`
	RoomNumber    string    `json:"room_number,omitempty"`
	CheckInDate   string    `json:"check_in_date,omitempty"`
	CheckOutDate  string    `json:"check_out_date,omitempty"`
	RoomReserved  bool      `json:"room_reserved"`
	OccurredAt    time.Time `json:"occurred_at"`
}
