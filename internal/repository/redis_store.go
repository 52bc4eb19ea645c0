package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as a JSON string under <prefix>:<kind>:<key>.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	kind   models.RecordKind
}

var _ RecordStore = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, prefix string, kind models.RecordKind) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, kind: kind}
}

func (s *RedisStore) redisKey(key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, s.kind, key)
}

func (s *RedisStore) Create(ctx context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.rdb.Set(ctx, s.redisKey(key), doc, 0).Err()
}

func (s *RedisStore) Read(ctx context.Context, key string) (Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	doc, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	fields := Fields{}
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return fields, nil
}

// Update merges under WATCH so a concurrent writer aborts the merge instead
// of being overwritten.
func (s *RedisStore) Update(ctx context.Context, key string, fields Fields) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	rk := s.redisKey(key)
	return s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		doc, err := tx.Get(ctx, rk).Bytes()
		if errors.Is(err, redis.Nil) {
			return notFound(key)
		}
		if err != nil {
			return err
		}
		current := Fields{}
		if err := json.Unmarshal(doc, &current); err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		current.Merge(fields)
		merged, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rk, merged, 0)
			return nil
		})
		return err
	}, rk)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	n, err := s.rdb.Del(ctx, s.redisKey(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(key)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	n, err := s.rdb.Exists(ctx, s.redisKey(key)).Result()
	return n > 0, err
}
