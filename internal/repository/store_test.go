package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, "hotelres", models.KindCustomer)
}

func stores(t *testing.T) map[string]RecordStore {
	return map[string]RecordStore{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir(), CustomerFiles),
		"redis":  newRedisStore(t),
	}
}

func customerFields() Fields {
	return Fields{
		"name":         "EdBaldwin",
		"email":        "ed.baldwin@nasa.gov.us",
		"mobile_phone": "1234567890",
		"address":      "Happy Valley 123",
	}
}

func TestRecordStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := store.Exists(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = store.Read(ctx, "EdBaldwin")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, store.Update(ctx, "EdBaldwin", Fields{"email": "x"}), ErrNotFound)
			assert.ErrorIs(t, store.Delete(ctx, "EdBaldwin"), ErrNotFound)

			require.NoError(t, store.Create(ctx, "EdBaldwin", customerFields()))
			ok, err = store.Exists(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.True(t, ok)

			got, err := store.Read(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.Equal(t, customerFields(), got)

			require.NoError(t, store.Update(ctx, "EdBaldwin", Fields{"email": "gordo_stevens@example.com"}))
			got, err = store.Read(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.Equal(t, "gordo_stevens@example.com", got["email"])
			assert.Equal(t, "Happy Valley 123", got["address"], "update must keep untouched fields")

			// Create overwrites.
			require.NoError(t, store.Create(ctx, "EdBaldwin", Fields{"name": "EdBaldwin"}))
			got, err = store.Read(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.Equal(t, Fields{"name": "EdBaldwin"}, got)

			require.NoError(t, store.Delete(ctx, "EdBaldwin"))
			ok, err = store.Exists(ctx, "EdBaldwin")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRecordStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "  ", "../etc", `a\b`, ".."} {
				assert.ErrorIs(t, store.Create(ctx, key, customerFields()), ErrInvalidKey, key)
				_, err := store.Exists(ctx, key)
				assert.ErrorIs(t, err, ErrInvalidKey, key)
			}
		})
	}
}

func TestRecordStore_NestedValues(t *testing.T) {
	ctx := context.Background()
	fields := Fields{
		"name":  "California",
		"rooms": []string{"101", "102"},
		"reservations": map[string]models.RoomReservation{
			"101": {GuestName: "A", CheckInDate: "2024-02-15", CheckOutDate: "2024-02-20"},
		},
	}

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Create(ctx, "California", fields))
			got, err := store.Read(ctx, "California")
			require.NoError(t, err)

			var doc models.HotelDocument
			require.NoError(t, got.Decode(&doc))
			assert.Equal(t, []string{"101", "102"}, doc.Rooms)
			assert.Equal(t, "A", doc.Reservations["101"].GuestName)
		})
	}
}

func TestFileStore_UsesRecordFileNames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	customers := NewFileStore(dir, CustomerFiles)
	hotels := NewFileStore(dir, HotelFiles)
	reservations := NewFileStore(dir, ReservationFiles)

	require.NoError(t, customers.Create(ctx, "EdBaldwin", customerFields()))
	require.NoError(t, hotels.Create(ctx, "California", Fields{"name": "California"}))
	require.NoError(t, reservations.Create(ctx, "abc", Fields{"reservation_id": "abc"}))

	for _, name := range []string{"EdBaldwin_customer.json", "California_hotel.json", "reservation_abc.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	// Same key, different kinds, different files.
	ok, err := hotels.Exists(ctx, "EdBaldwin")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewFileStore(dir, HotelFiles)

	require.NoError(t, store.Create(context.Background(), "California", Fields{"name": "California"}))
	assert.FileExists(t, store.Path("California"))
}

func TestFileStore_RecordFileMode(t *testing.T) {
	store := NewFileStore(t.TempDir(), HotelFiles)
	require.NoError(t, store.Create(context.Background(), "California", Fields{"name": "California"}))
	require.NoError(t, store.Update(context.Background(), "California", Fields{"phone": "1234567890"}))

	info, err := os.Stat(store.Path("California"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStore_UnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewFileStore(filepath.Join(blocker, "data"), ReservationFiles)
	err := store.Create(context.Background(), "abc", Fields{"reservation_id": "abc"})

	assert.Error(t, err)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, CustomerFiles)
	require.NoError(t, os.WriteFile(store.Path("broken"), []byte("{not json"), 0o644))

	_, err := store.Read(context.Background(), "broken")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFileStore(t.TempDir(), CustomerFiles)
	assert.ErrorIs(t, store.Create(ctx, "EdBaldwin", customerFields()), context.Canceled)
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	hotels := NewRedisStore(rdb, "hotelres", models.KindHotel)
	require.NoError(t, hotels.Create(ctx, "California", Fields{"name": "California"}))

	assert.True(t, mr.Exists("hotelres:hotel:California"))

	customers := NewRedisStore(rdb, "hotelres", models.KindCustomer)
	ok, err := customers.Exists(ctx, "California")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFields_Decode(t *testing.T) {
	var c models.Customer
	require.NoError(t, customerFields().Decode(&c))

	assert.Equal(t, "EdBaldwin", c.Name)
	assert.Equal(t, "1234567890", c.MobilePhone)
}
