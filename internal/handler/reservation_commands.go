package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-reservation/internal/dto"
	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/service"
	"go.uber.org/zap"
)

func (h *CLIHandler) reservation(ctx context.Context, args []string) error {
	act, rest, err := action("reservation", args)
	if err != nil {
		return err
	}

	fs := h.newFlagSet("reservation " + act)
	switch act {
	case "create":
		customerName := fs.String("customer", "", "customer name")
		hotelName := fs.String("hotel", "", "hotel name")
		room := fs.String("room", "", "room number")
		checkIn := fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
		checkOut := fs.String("check-out", "", "check-out date (YYYY-MM-DD)")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{
			"customer": *customerName, "hotel": *hotelName, "room": *room,
			"check-in": *checkIn, "check-out": *checkOut,
		}, "customer", "hotel", "room", "check-in", "check-out"); err != nil {
			return err
		}
		req, err := reservationRequest(*room, *checkIn, *checkOut)
		if err != nil {
			return err
		}
		return h.createReservation(ctx, *customerName, *hotelName, req)

	case "show":
		id := fs.String("id", "", "reservation id")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"id": *id}, "id"); err != nil {
			return err
		}
		snap, err := h.reservations.GetReservation(ctx, *id)
		if err != nil {
			return err
		}
		return dto.WriteReservation(h.out, dto.ToReservationView(snap))

	case "cancel":
		id := fs.String("id", "", "reservation id")
		release := fs.Bool("release", false, "also free the room at the hotel")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"id": *id}, "id"); err != nil {
			return err
		}
		return h.cancelReservation(ctx, *id, *release)
	}
	return unknownAction("reservation", act)
}

func reservationRequest(room, checkIn, checkOut string) (models.ReservationRequest, error) {
	in, err := models.ParseDate(checkIn)
	if err != nil {
		return models.ReservationRequest{}, fmt.Errorf("%w: --check-in %q is not a YYYY-MM-DD date", ErrUsage, checkIn)
	}
	out, err := models.ParseDate(checkOut)
	if err != nil {
		return models.ReservationRequest{}, fmt.Errorf("%w: --check-out %q is not a YYYY-MM-DD date", ErrUsage, checkOut)
	}
	return models.ReservationRequest{RoomNumber: room, CheckIn: in, CheckOut: out}, nil
}

func (h *CLIHandler) createReservation(ctx context.Context, customerName, hotelName string, req models.ReservationRequest) error {
	customer, err := h.customers.GetCustomer(ctx, customerName)
	if err != nil {
		return err
	}
	hotel, err := h.hotels.GetHotel(ctx, hotelName)
	if err != nil {
		return err
	}

	r := models.NewReservation(customer, hotel, req)
	out, err := h.reservations.CreateReservation(ctx, r)
	if err != nil {
		return err
	}
	if out.RoomReserved {
		if err := h.hotels.SaveAvailability(ctx, hotel); err != nil {
			return fmt.Errorf("reservation %s saved but hotel availability was not: %w", out.Key, err)
		}
	}

	fmt.Fprintf(h.out, "Reservation %s created\n", out.Key)
	if !out.RoomReserved {
		fmt.Fprintf(h.out, "warning: room %s at %s was not reserved: %v\n", req.RoomNumber, hotel.Name, out.Reason)
	}
	return nil
}

// cancelReservation removes the record. With release it also frees the
// hotel room, but only while the room is still held for this reservation.
// The hotel is resolved before the record is removed.
func (h *CLIHandler) cancelReservation(ctx context.Context, id string, release bool) error {
	var (
		hotel *models.Hotel
		snap  models.ReservationSnapshot
		skip  string
	)
	if release {
		var err error
		hotel, snap, skip, err = h.releaseTarget(ctx, id)
		if err != nil {
			return err
		}
	}

	deleted, err := h.reservations.CancelReservation(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(h.out, "No reservation %s\n", id)
		return nil
	}
	fmt.Fprintf(h.out, "Reservation %s cancelled\n", id)
	if !release {
		return nil
	}

	if hotel == nil {
		h.log.Info("room not released", zap.String("reservation_id", id), zap.String("reason", skip))
		fmt.Fprintln(h.out, skip)
		return nil
	}
	if !hotel.CancelReservation(snap.RoomNumber) {
		return fmt.Errorf("%w: %s at %s", models.ErrNoReservation, snap.RoomNumber, hotel.Name)
	}
	if err := h.hotels.SaveAvailability(ctx, hotel); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Room %s at %s released\n", snap.RoomNumber, hotel.Name)
	return nil
}

// releaseTarget returns the hotel whose room the reservation holds. A nil
// hotel comes with the message explaining why no room will be released.
func (h *CLIHandler) releaseTarget(ctx context.Context, id string) (*models.Hotel, models.ReservationSnapshot, string, error) {
	snap, err := h.reservations.GetReservation(ctx, id)
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		return nil, snap, "", nil
	case err != nil:
		return nil, snap, fmt.Sprintf("Reservation %s is unreadable, no room released", id), nil
	}

	hotel, err := h.hotels.GetHotel(ctx, snap.HotelName)
	if errors.Is(err, service.ErrHotelNotFound) {
		return nil, snap, fmt.Sprintf("Hotel %s not found, room %s not released", snap.HotelName, snap.RoomNumber), nil
	}
	if err != nil {
		return nil, snap, "", err
	}

	rec, ok := hotel.Reservation(snap.RoomNumber)
	if !ok || !heldBy(rec, snap) {
		return nil, snap, fmt.Sprintf("Room %s at %s is not held for this reservation", snap.RoomNumber, hotel.Name), nil
	}
	return hotel, snap, "", nil
}

func heldBy(rec models.ReservationRecord, snap models.ReservationSnapshot) bool {
	return rec.GuestName == snap.CustomerName &&
		models.FormatDate(rec.CheckIn) == snap.CheckInDate &&
		models.FormatDate(rec.CheckOut) == snap.CheckOutDate
}
