package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrInvalidKey = errors.New("invalid record key")
)

// Fields is the flat set of named values persisted for one entity.
type Fields map[string]any

// Decode copies the fields into v through their JSON form, so v's json tags
// select the fields.
func (f Fields) Decode(v any) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}
	return nil
}

// Merge overwrites f's values with those in other.
func (f Fields) Merge(other Fields) {
	for k, v := range other {
		f[k] = v
	}
}

// RecordStore persists one record per key for a single entity kind.
// Create always overwrites an existing record.
type RecordStore interface {
	Create(ctx context.Context, key string, fields Fields) error
	Read(ctx context.Context, key string) (Fields, error)
	Update(ctx context.Context, key string, fields Fields) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ValidateKey rejects keys that cannot name a single record.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}

// normalize round-trips fields through JSON so every backend hands back the
// same value shapes (float64 numbers, []any lists, map[string]any objects).
func normalize(fields Fields) (Fields, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return out, nil
}
