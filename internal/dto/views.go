package dto

import (
	"fmt"
	"io"

	"github.com/Eursukkul/hotel-reservation/internal/models"
)

type CustomerView struct {
	Name        string
	Email       string
	MobilePhone string
	Address     string
}

type RoomView struct {
	Number   string
	Reserved bool
	Guest    string
	CheckIn  string
	CheckOut string
	Nights   int
}

type HotelView struct {
	Name     string
	Location string
	Phone    string
	Rooms    []RoomView
}

type ReservationView struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	HotelName     string
	RoomNumber    string
	CheckIn       string
	CheckOut      string
	Nights        int
}

func ToCustomerView(c *models.Customer) CustomerView {
	return CustomerView{
		Name:        c.Name,
		Email:       c.Email,
		MobilePhone: c.MobilePhone,
		Address:     c.Address,
	}
}

func ToHotelView(h *models.Hotel) HotelView {
	v := HotelView{Name: h.Name, Location: h.Location, Phone: h.Phone}
	for _, room := range h.Rooms() {
		rv := RoomView{Number: room}
		if rec, ok := h.Reservation(room); ok {
			rv.Reserved = true
			rv.Guest = rec.GuestName
			rv.CheckIn = models.FormatDate(rec.CheckIn)
			rv.CheckOut = models.FormatDate(rec.CheckOut)
			rv.Nights = models.DateRange{CheckIn: rec.CheckIn, CheckOut: rec.CheckOut}.Nights()
		}
		v.Rooms = append(v.Rooms, rv)
	}
	return v
}

func ToReservationView(s models.ReservationSnapshot) ReservationView {
	v := ReservationView{
		ID:            s.ReservationID,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		HotelName:     s.HotelName,
		RoomNumber:    s.RoomNumber,
		CheckIn:       s.CheckInDate,
		CheckOut:      s.CheckOutDate,
	}
	// Snapshot dates are strings; an unparsable one leaves Nights at 0.
	in, errIn := models.ParseDate(s.CheckInDate)
	out, errOut := models.ParseDate(s.CheckOutDate)
	if errIn == nil && errOut == nil {
		v.Nights = models.DateRange{CheckIn: in, CheckOut: out}.Nights()
	}
	return v
}

func WriteCustomer(w io.Writer, v CustomerView) error {
	_, err := fmt.Fprintf(w, "\tCustomer Information:\n\t\tName: %s\n\t\tEmail: %s\n\t\tMobile Phone: %s\n\t\tAddress: %s\n",
		v.Name, v.Email, v.MobilePhone, v.Address)
	return err
}

func WriteHotel(w io.Writer, v HotelView) error {
	if _, err := fmt.Fprintf(w, "\tHotel: %s\n\tLocation: %s\n\tPhone: %s\n\tRooms:\n", v.Name, v.Location, v.Phone); err != nil {
		return err
	}
	for _, r := range v.Rooms {
		line := fmt.Sprintf("\t\t%s\tavailable\n", r.Number)
		if r.Reserved {
			line = fmt.Sprintf("\t\t%s\treserved by %s from %s to %s (%s)\n", r.Number, r.Guest, r.CheckIn, r.CheckOut, nights(r.Nights))
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func WriteReservation(w io.Writer, v ReservationView) error {
	_, err := fmt.Fprintf(w, "\tReservation: %s\n\t\tCustomer: %s <%s>\n\t\tHotel: %s\n\t\tRoom: %s\n\t\tDates: %s to %s (%s)\n",
		v.ID, v.CustomerName, v.CustomerEmail, v.HotelName, v.RoomNumber, v.CheckIn, v.CheckOut, nights(v.Nights))
	return err
}

func nights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}
