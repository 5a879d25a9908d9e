package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const streakStoreKey = "innergy:streaks"

// RedisStreakStore implements StreakStore using a single Redis key holding
// the JSON category->record mapping. Streak data persists indefinitely, so
// no TTL is set.
type RedisStreakStore struct {
	client redis.UniversalClient
	cfg    RedisStreakStoreConfig
}

type RedisStreakStoreConfig struct {
	// KeyPrefix is prepended to the storage key, e.g. to separate
	// environments sharing one Redis.
	KeyPrefix string
}

// NewRedisStreakStore creates a new Redis-backed streak store.
func NewRedisStreakStore(client redis.UniversalClient, cfg RedisStreakStoreConfig) *RedisStreakStore {
	return &RedisStreakStore{
		client: client,
		cfg:    cfg,
	}
}

func (r *RedisStreakStore) key() string {
	return r.cfg.KeyPrefix + streakStoreKey
}

// GetStreaks retrieves the full streak mapping. A missing key and malformed
// JSON both degrade to an empty mapping; only transport failures are errors.
func (r *RedisStreakStore) GetStreaks(ctx context.Context) (map[string]*StreakRecord, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		logrus.Debugf("no streak data yet, returning empty mapping")
		return map[string]*StreakRecord{}, nil
	}
	if err != nil {
		logrus.Errorf("failed to get streak data: %v", err)
		return nil, fmt.Errorf("failed to get streak data: %w", err)
	}

	var streaks map[string]*StreakRecord
	if err := json.Unmarshal([]byte(data), &streaks); err != nil {
		logrus.Warnf("malformed streak data, degrading to empty mapping: %v", err)
		return map[string]*StreakRecord{}, nil
	}

	return streaks, nil
}

// SaveStreaks overwrites the full streak mapping.
func (r *RedisStreakStore) SaveStreaks(ctx context.Context, streaks map[string]*StreakRecord) error {
	data, err := json.Marshal(streaks)
	if err != nil {
		logrus.Errorf("failed to marshal streak data: %v", err)
		return fmt.Errorf("failed to marshal streak data: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		logrus.Errorf("failed to set streak data: %v", err)
		return fmt.Errorf("failed to set streak data: %w", err)
	}

	logrus.Debugf("saved streak data for %d categories", len(streaks))
	return nil
}
