package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

const redisKeyPrefix = "rmxlrc:lyrics:"

// RedisStore keeps documents in Redis with an optional expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (model.LyricDocument, bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return model.LyricDocument{}, false, nil
	}
	if err != nil {
		return model.LyricDocument{}, false, err
	}

	var doc model.LyricDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.LyricDocument{}, false, nil
	}
	return doc, true, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, key string, doc model.LyricDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKeyPrefix+key, data, s.ttl).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
