package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File name patterns for each entity kind. The key replaces %s.
const (
	CustomerFiles    = "%s_customer.json"
	HotelFiles       = "%s_hotel.json"
	ReservationFiles = "reservation_%s.json"
)

const recordFileMode fs.FileMode = 0o644

// FileStore keeps each record as an indented JSON file inside dir.
type FileStore struct {
	dir     string
	pattern string
}

var _ RecordStore = (*FileStore)(nil)

func NewFileStore(dir, pattern string) *FileStore {
	return &FileStore{dir: dir, pattern: pattern}
}

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, key))
}

func (s *FileStore) Create(ctx context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return s.write(key, fields)
}

func (s *FileStore) Read(ctx context.Context, key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	fields := Fields{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path(key), err)
	}
	return fields, nil
}

func (s *FileStore) Update(ctx context.Context, key string, fields Fields) error {
	current, err := s.Read(ctx, key)
	if err != nil {
		return err
	}
	current.Merge(fields)
	return s.write(key, current)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(key)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	return true, nil
}

// write replaces the record through a temp file so readers never see a
// half-written document.
func (s *FileStore) write(key string, fields Fields) error {
	b, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".record-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(recordFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
