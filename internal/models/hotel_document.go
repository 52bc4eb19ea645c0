package models

import (
	"fmt"
	"slices"
)

// HotelDocument is the persisted shape of a hotel record.
type HotelDocument struct {
	Name         string                     `json:"name"`
	Location     string                     `json:"location"`
	Phone        string                     `json:"phone"`
	Rooms        []string                   `json:"rooms"`
	Reservations map[string]RoomReservation `json:"reservations"`
}

type RoomReservation struct {
	GuestName    string `json:"guest_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func (h *Hotel) Document() HotelDocument {
	return HotelDocument{
		Name:         h.Name,
		Location:     h.Location,
		Phone:        h.Phone,
		Rooms:        h.Rooms(),
		Reservations: h.reservationDocuments(),
	}
}

func (h *Hotel) reservationDocuments() map[string]RoomReservation {
	out := make(map[string]RoomReservation, len(h.reservations))
	for room, rec := range h.reservations {
		out[room] = RoomReservation{
			GuestName:    rec.GuestName,
			CheckInDate:  FormatDate(rec.CheckIn),
			CheckOutDate: FormatDate(rec.CheckOut),
		}
	}
	return out
}

// Fields flattens the hotel into its record field set.
func (h *Hotel) Fields() map[string]any {
	return map[string]any{
		"name":         h.Name,
		"location":     h.Location,
		"phone":        h.Phone,
		"rooms":        h.Rooms(),
		"reservations": h.reservationDocuments(),
	}
}

// ReservationFields is the partial field set written when only
// availability changed.
func (h *Hotel) ReservationFields() map[string]any {
	return map[string]any{"reservations": h.reservationDocuments()}
}

// HotelFromDocument rebuilds a hotel, restoring its room set and reservation
// map. Reservations for rooms outside the set are rejected.
func HotelFromDocument(doc HotelDocument, opts ...HotelOption) (*Hotel, error) {
	if len(doc.Rooms) > 0 {
		opts = append(slices.Clone(opts), WithRooms(doc.Rooms...))
	}
	h := NewHotel(doc.Name, doc.Location, doc.Phone, opts...)
	for room, r := range doc.Reservations {
		if !h.HasRoom(room) {
			return nil, fmt.Errorf("hotel %s: %w: %s", doc.Name, ErrRoomNotFound, room)
		}
		checkIn, err := ParseDate(r.CheckInDate)
		if err != nil {
			return nil, fmt.Errorf("hotel %s room %s: check_in_date: %w", doc.Name, room, err)
		}
		checkOut, err := ParseDate(r.CheckOutDate)
		if err != nil {
			return nil, fmt.Errorf("hotel %s room %s: check_out_date: %w", doc.Name, room, err)
		}
		h.reservations[room] = ReservationRecord{
			RoomNumber: room,
			GuestName:  r.GuestName,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
		}
	}
	return h, nil
}
