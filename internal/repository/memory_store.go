package repository

import "context"

// MemoryStore is an in-process RecordStore used by tests and dry runs.
type MemoryStore struct {
	records map[string]Fields
}

var _ RecordStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Fields)}
}

func (s *MemoryStore) Create(_ context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	stored, err := normalize(fields)
	if err != nil {
		return err
	}
	s.records[key] = stored
	return nil
}

func (s *MemoryStore) Read(_ context.Context, key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	rec, ok := s.records[key]
	if !ok {
		return nil, notFound(key)
	}
	return normalize(rec)
}

func (s *MemoryStore) Update(_ context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	rec, ok := s.records[key]
	if !ok {
		return notFound(key)
	}
	patch, err := normalize(fields)
	if err != nil {
		return err
	}
	rec.Merge(patch)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if _, ok := s.records[key]; !ok {
		return notFound(key)
	}
	delete(s.records, key)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	_, ok := s.records[key]
	return ok, nil
}

// Len reports how many records are stored.
func (s *MemoryStore) Len() int {
	return len(s.records)
}
