package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/hotel-reservation/internal/models"
)

func (h *CLIHandler) hotel(ctx context.Context, args []string) error {
	act, rest, err := action("hotel", args)
	if err != nil {
		return err
	}

	fs := h.newFlagSet("hotel " + act)
	name := fs.String("name", "", "hotel name")
	switch act {
	case "create":
		location := fs.String("location", "", "hotel location")
		phone := fs.String("phone", "", "hotel phone")
		rooms := fs.String("rooms", strings.Join(h.rooms, ","), "comma separated room numbers")
		if err := parse(fs, rest); err != nil {
			return err
		}
		hotel := models.NewHotel(*name, *location, *phone,
			models.WithRooms(strings.Split(*rooms, ",")...),
			models.WithLogger(h.log),
		)
		if len(hotel.Rooms()) == 0 {
			return fmt.Errorf("%w: --rooms must name at least one room", ErrUsage)
		}
		if err := h.hotels.CreateHotel(ctx, hotel); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Hotel %s created with rooms %s\n", hotel.Name, strings.Join(hotel.Rooms(), ", "))
		return nil

	case "show":
		if err := parse(fs, rest); err != nil {
			return err
		}
		hotel, err := h.loadHotel(ctx, *name)
		if err != nil {
			return err
		}
		return h.hotels.DisplayHotel(h.out, hotel)

	case "modify":
		newName := fs.String("new-name", "", "rename the hotel")
		location := fs.String("location", "", "hotel location")
		phone := fs.String("phone", "", "hotel phone")
		if err := parse(fs, rest); err != nil {
			return err
		}
		hotel, err := h.loadHotel(ctx, *name)
		if err != nil {
			return err
		}
		target := *newName
		if target == "" {
			target = *name
		}
		if err := h.hotels.ModifyHotel(ctx, hotel, target, *location, *phone); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Hotel %s modified\n", hotel.Name)
		return nil

	case "delete":
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name}, "name"); err != nil {
			return err
		}
		if err := h.hotels.DeleteHotel(ctx, *name); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Hotel %s deleted\n", *name)
		return nil

	case "release":
		room := fs.String("room", "", "room number")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name, "room": *room}, "name", "room"); err != nil {
			return err
		}
		hotel, err := h.loadHotel(ctx, *name)
		if err != nil {
			return err
		}
		if !hotel.CancelReservation(*room) {
			return fmt.Errorf("%w: %s at %s", models.ErrNoReservation, *room, hotel.Name)
		}
		if err := h.hotels.SaveAvailability(ctx, hotel); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Room %s at %s released\n", *room, hotel.Name)
		return nil
	}
	return unknownAction("hotel", act)
}

func (h *CLIHandler) loadHotel(ctx context.Context, name string) (*models.Hotel, error) {
	if err := required(map[string]string{"name": name}, "name"); err != nil {
		return nil, err
	}
	return h.hotels.GetHotel(ctx, name)
}
