package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func sampleHotel() *Hotel {
	return NewHotel("California", "123 Main St", "1234567890")
}

func TestNewHotel_DefaultRooms(t *testing.T) {
	h := sampleHotel()

	assert.Equal(t, []string{"101", "102", "103"}, h.Rooms())
	assert.Empty(t, h.Reservations())
}

func TestNewHotel_WithRooms(t *testing.T) {
	h := NewHotel("Marriot", "456 Elm St", "555", WithRooms("201", "202", "201", ""))

	assert.Equal(t, []string{"201", "202"}, h.Rooms())
	assert.False(t, h.HasRoom("101"))
}

func TestRooms_ReturnsCopy(t *testing.T) {
	h := sampleHotel()
	rooms := h.Rooms()
	rooms[0] = "999"

	assert.Equal(t, "101", h.Rooms()[0])
}

func TestReserveRoom_Scenario(t *testing.T) {
	h := sampleHotel()

	assert.True(t, h.ReserveRoom("101", "Roberto Avelar", date(t, "2024-02-15"), date(t, "2024-02-20")))
	assert.False(t, h.ReserveRoom("101", "Jane Doe", date(t, "2024-02-16"), date(t, "2024-02-18")))
	assert.False(t, h.ReserveRoom("102", "Jane Doe", date(t, "2024-02-20"), date(t, "2024-02-15")))

	rec, ok := h.Reservation("101")
	require.True(t, ok)
	assert.Equal(t, "Roberto Avelar", rec.GuestName)
	assert.True(t, h.IsAvailable("102"))
}

func TestReserve_UnknownRoom(t *testing.T) {
	h := sampleHotel()

	for _, room := range []string{"203", "", "1O1"} {
		err := h.Reserve(room, "Ed Baldwin", date(t, "2024-02-15"), date(t, "2024-02-20"))
		assert.ErrorIs(t, err, ErrRoomNotFound)
	}
	assert.Empty(t, h.Reservations())
}

func TestReserve_SecondCallOnSameRoomFails(t *testing.T) {
	h := sampleHotel()
	require.NoError(t, h.Reserve("103", "A", date(t, "2024-02-15"), date(t, "2024-02-20")))

	cases := []struct{ guest, in, out string }{
		{"A", "2024-02-15", "2024-02-20"},
		{"B", "2025-01-01", "2025-01-02"},
		{"C", "2023-06-01", "2023-07-01"},
	}
	for _, c := range cases {
		err := h.Reserve("103", c.guest, date(t, c.in), date(t, c.out))
		assert.ErrorIs(t, err, ErrRoomReserved)
	}

	rec, _ := h.Reservation("103")
	assert.Equal(t, "A", rec.GuestName)
}

func TestReserve_RangeCheckedBeforeRoom(t *testing.T) {
	h := sampleHotel()
	require.NoError(t, h.Reserve("101", "A", date(t, "2024-02-15"), date(t, "2024-02-20")))

	// Unknown room, reserved room and valid room all report the range first.
	for _, room := range []string{"999", "101", "102"} {
		err := h.Reserve(room, "B", date(t, "2024-02-20"), date(t, "2024-02-20"))
		assert.ErrorIs(t, err, ErrInvalidRange, room)
		err = h.Reserve(room, "B", date(t, "2024-02-21"), date(t, "2024-02-20"))
		assert.ErrorIs(t, err, ErrInvalidRange, room)
	}
	assert.Len(t, h.Reservations(), 1)
}

func TestReserve_IgnoresTimeOfDay(t *testing.T) {
	h := sampleHotel()
	in := time.Date(2024, 2, 15, 23, 0, 0, 0, time.UTC)
	out := time.Date(2024, 2, 15, 23, 30, 0, 0, time.UTC)

	assert.ErrorIs(t, h.Reserve("101", "A", in, out), ErrInvalidRange)
	assert.NoError(t, h.Reserve("101", "A", in, out.Add(time.Hour)))
}

func TestCancelReservation_Empty(t *testing.T) {
	h := sampleHotel()

	assert.False(t, h.CancelReservation("101"))
	assert.ErrorIs(t, h.Release("101"), ErrNoReservation)
}

func TestCancelReservation_NonMatchingRoom(t *testing.T) {
	h := sampleHotel()
	require.NoError(t, h.Reserve("101", "A", date(t, "2024-02-15"), date(t, "2024-02-20")))

	assert.NotPanics(t, func() {
		assert.False(t, h.CancelReservation("102"))
		assert.False(t, h.CancelReservation("999"))
	})
	assert.Len(t, h.Reservations(), 1)
}

func TestCancelReservation_RoundTrip(t *testing.T) {
	h := sampleHotel()

	require.True(t, h.ReserveRoom("101", "A", date(t, "2024-02-15"), date(t, "2024-02-20")))
	require.True(t, h.CancelReservation("101"))
	assert.True(t, h.IsAvailable("101"))
	assert.True(t, h.ReserveRoom("101", "B", date(t, "2024-03-01"), date(t, "2024-03-04")))

	rec, _ := h.Reservation("101")
	assert.Equal(t, "B", rec.GuestName)
}

func TestReserveRoom_ReportsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHotel("California", "123 Main St", "1234567890", WithLogger(zap.New(core)))

	h.ReserveRoom("101", "A", date(t, "2024-02-15"), date(t, "2024-02-20"))
	h.ReserveRoom("101", "B", date(t, "2024-02-15"), date(t, "2024-02-20"))
	h.CancelReservation("102")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "room reserved", entries[0].Message)
	assert.Equal(t, "room not reserved", entries[1].Message)
	assert.Equal(t, "reservation not cancelled", entries[2].Message)
}

func TestModify_RequiresAllFields(t *testing.T) {
	h := sampleHotel()

	err := h.Modify("Marriot", "", "0987654321")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "California", h.Name)
	assert.Equal(t, "123 Main St", h.Location)

	require.NoError(t, h.Modify("Marriot", "456 Elm St", "0987654321"))
	assert.Equal(t, "Marriot", h.Name)
	assert.Equal(t, "0987654321", h.Phone)
}

func TestHotelFromDocument_RestoresReservations(t *testing.T) {
	h := NewHotel("California", "123 Main St", "1234567890", WithRooms("201", "202"))
	require.NoError(t, h.Reserve("202", "A", date(t, "2024-02-15"), date(t, "2024-02-20")))

	restored, err := HotelFromDocument(h.Document(), WithRooms("101"))

	require.NoError(t, err)
	assert.Equal(t, []string{"201", "202"}, restored.Rooms())
	assert.False(t, restored.IsAvailable("202"))
	assert.ErrorIs(t, restored.Reserve("202", "B", date(t, "2024-03-01"), date(t, "2024-03-02")), ErrRoomReserved)
}

func TestHotelFromDocument_RejectsUnknownRoom(t *testing.T) {
	doc := HotelDocument{
		Name:  "California",
		Rooms: []string{"101"},
		Reservations: map[string]RoomReservation{
			"301": {GuestName: "A", CheckInDate: "2024-02-15", CheckOutDate: "2024-02-20"},
		},
	}

	_, err := HotelFromDocument(doc)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
