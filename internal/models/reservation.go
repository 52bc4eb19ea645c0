package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationRequest carries the room and dates a reservation is made for.
type ReservationRequest struct {
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
}

// Reservation binds a customer and a hotel to a room and date range. Its ID
// is assigned once, at construction.
type Reservation struct {
	ID         string
	Customer   *Customer
	Hotel      *Hotel
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
}

func NewReservation(customer *Customer, hotel *Hotel, req ReservationRequest) *Reservation {
	return &Reservation{
		ID:         uuid.NewString(),
		Customer:   customer,
		Hotel:      hotel,
		RoomNumber: req.RoomNumber,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
	}
}

// ReservationSnapshot is the denormalized record persisted for a
// reservation. Customer and hotel values are copied at creation time and
// never refreshed.
type ReservationSnapshot struct {
	ReservationID string `json:"reservation_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	HotelName     string `json:"hotel_name"`
	RoomNumber    string `json:"room_number"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
}

func (r *Reservation) Snapshot() ReservationSnapshot {
	return ReservationSnapshot{
		ReservationID: r.ID,
		CustomerName:  r.Customer.Name,
		CustomerEmail: r.Customer.Email,
		HotelName:     r.Hotel.Name,
		RoomNumber:    r.RoomNumber,
		CheckInDate:   FormatDate(r.CheckIn),
		CheckOutDate:  FormatDate(r.CheckOut),
	}
}

func (s ReservationSnapshot) Fields() map[string]any {
	return map[string]any{
		"reservation_id": s.ReservationID,
		"customer_name":  s.CustomerName,
		"customer_email": s.CustomerEmail,
		"hotel_name":     s.HotelName,
		"room_number":    s.RoomNumber,
		"check_in_date":  s.CheckInDate,
		"check_out_date": s.CheckOutDate,
	}
}
