package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-reservation/internal/repository"
)

var ErrNameTaken = errors.New("name already in use")

func ensureFree(ctx context.Context, store repository.RecordStore, key string) error {
	taken, err := store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrNameTaken, key)
	}
	return nil
}

// rekey moves the record at from to to. The new record is written before
// the old one is removed, so a failure leaves at least one copy.
func rekey(ctx context.Context, store repository.RecordStore, from, to string) error {
	fields, err := store.Read(ctx, from)
	if err != nil {
		return err
	}
	if err := store.Create(ctx, to, fields); err != nil {
		return err
	}
	return store.Delete(ctx, from)
}
