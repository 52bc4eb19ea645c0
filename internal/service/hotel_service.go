package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Eursukkul/hotel-reservation/internal/dto"
	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/repository"
	"go.uber.org/zap"
)

var ErrHotelNotFound = errors.New("hotel not found")

type HotelService interface {
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	GetHotel(ctx context.Context, name string) (*models.Hotel, error)
	ModifyHotel(ctx context.Context, hotel *models.Hotel, name, location, phone string) error
	SaveAvailability(ctx context.Context, hotel *models.Hotel) error
	DeleteHotel(ctx context.Context, name string) error
	DisplayHotel(w io.Writer, hotel *models.Hotel) error
}

type hotelService struct {
	store repository.RecordStore
	log   *zap.Logger
	opts  []models.HotelOption
}

// NewHotelService returns a HotelService. opts are applied to every hotel
// loaded from the store; a persisted room list still wins over WithRooms.
func NewHotelService(store repository.RecordStore, log *zap.Logger, opts ...models.HotelOption) HotelService {
	if log == nil {
		log = zap.NewNop()
	}
	return &hotelService{store: store, log: log, opts: opts}
}

func (s *hotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	if hotel.Name == "" {
		return models.NewValidationError("name")
	}
	if err := s.store.Create(ctx, hotel.Name, hotel.Fields()); err != nil {
		return fmt.Errorf("create hotel: %w", err)
	}
	s.log.Info("hotel created", zap.String("hotel", hotel.Name), zap.Strings("rooms", hotel.Rooms()))
	return nil
}

func (s *hotelService) GetHotel(ctx context.Context, name string) (*models.Hotel, error) {
	fields, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, hotelErr(name, err)
	}
	var doc models.HotelDocument
	if err := fields.Decode(&doc); err != nil {
		return nil, fmt.Errorf("hotel %s: %w", name, err)
	}
	return models.HotelFromDocument(doc, s.opts...)
}

// ModifyHotel updates the stored record and then the hotel itself. On any
// error neither is changed.
func (s *hotelService) ModifyHotel(ctx context.Context, hotel *models.Hotel, name, location, phone string) error {
	if err := models.ValidateHotelInfo(name, location, phone); err != nil {
		return err
	}
	current := hotel.Name
	if name != current {
		if err := ensureFree(ctx, s.store, name); err != nil {
			return err
		}
	}
	update := repository.Fields{"name": name, "location": location, "phone": phone}
	if err := s.store.Update(ctx, current, update); err != nil {
		return hotelErr(current, err)
	}
	if name != current {
		if err := rekey(ctx, s.store, current, name); err != nil {
			return fmt.Errorf("rename hotel %s: %w", current, err)
		}
	}
	if err := hotel.Modify(name, location, phone); err != nil {
		return err
	}
	s.log.Info("hotel modified", zap.String("hotel", current), zap.String("name", name))
	return nil
}

func (s *hotelService) SaveAvailability(ctx context.Context, hotel *models.Hotel) error {
	if err := s.store.Update(ctx, hotel.Name, hotel.ReservationFields()); err != nil {
		return hotelErr(hotel.Name, err)
	}
	return nil
}

func (s *hotelService) DeleteHotel(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return hotelErr(name, err)
	}
	s.log.Info("hotel deleted", zap.String("hotel", name))
	return nil
}

func (s *hotelService) DisplayHotel(w io.Writer, hotel *models.Hotel) error {
	return dto.WriteHotel(w, dto.ToHotelView(hotel))
}

func hotelErr(name string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrHotelNotFound, name)
	}
	return fmt.Errorf("hotel %s: %w", name, err)
}
