package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrRoomNotFound  = errors.New("room does not exist")
	ErrRoomReserved  = errors.New("room already reserved")
	ErrNoReservation = errors.New("no reservation for room")
)

func NewValidationError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

func NewRangeError(checkIn, checkOut string) error {
	return fmt.Errorf("%w: check-out %s must be after check-in %s", ErrInvalidRange, checkOut, checkIn)
}
