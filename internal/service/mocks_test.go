package service

import (
	"context"
	"sync"

	"github.com/Eursukkul/hotel-reservation/internal/repository"
)

// --- Mock RecordStore ---

type mockStore struct {
	createFn func(ctx context.Context, key string, fields repository.Fields) error
	readFn   func(ctx context.Context, key string) (repository.Fields, error)
	updateFn func(ctx context.Context, key string, fields repository.Fields) error
	deleteFn func(ctx context.Context, key string) error
	existsFn func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) Create(ctx context.Context, key string, fields repository.Fields) error {
	return m.createFn(ctx, key, fields)
}
func (m *mockStore) Read(ctx context.Context, key string) (repository.Fields, error) {
	return m.readFn(ctx, key)
}
func (m *mockStore) Update(ctx context.Context, key string, fields repository.Fields) error {
	return m.updateFn(ctx, key, fields)
}
func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.deleteFn(ctx, key)
}
func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.existsFn(ctx, key)
}

// --- Mock Publisher ---

type published struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	mu   sync.Mutex
	err  error
	sent []published
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, published{routingKey: routingKey, payload: payload})
	return m.err
}
