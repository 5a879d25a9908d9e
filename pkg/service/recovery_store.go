package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const recoveryStoreKey = "innergy:streak_recovery"

// RedisRecoveryStore implements RecoveryStore using a single Redis key
// holding the JSON RecoveryState object. No TTL; the freeze history is kept
// indefinitely.
type RedisRecoveryStore struct {
	client redis.UniversalClient
	cfg    RedisRecoveryStoreConfig
}

type RedisRecoveryStoreConfig struct {
	KeyPrefix string
}

// NewRedisRecoveryStore creates a new Redis-backed recovery store.
func NewRedisRecoveryStore(client redis.UniversalClient, cfg RedisRecoveryStoreConfig) *RedisRecoveryStore {
	return &RedisRecoveryStore{
		client: client,
		cfg:    cfg,
	}
}

func (r *RedisRecoveryStore) key() string {
	return r.cfg.KeyPrefix + recoveryStoreKey
}

func newRecoveryState() *RecoveryState {
	return &RecoveryState{
		FreezeHistory: []FreezeEntry{},
	}
}

// GetRecoveryState retrieves the freeze-budget state. A missing key and
// malformed JSON both degrade to zero-valued defaults.
func (r *RedisRecoveryStore) GetRecoveryState(ctx context.Context) (*RecoveryState, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		logrus.Debugf("no recovery state yet, returning defaults")
		return newRecoveryState(), nil
	}
	if err != nil {
		logrus.Errorf("failed to get recovery state: %v", err)
		return nil, fmt.Errorf("failed to get recovery state: %w", err)
	}

	var state RecoveryState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		logrus.Warnf("malformed recovery state, degrading to defaults: %v", err)
		return newRecoveryState(), nil
	}
	if state.FreezeHistory == nil {
		state.FreezeHistory = []FreezeEntry{}
	}

	return &state, nil
}

// SaveRecoveryState overwrites the freeze-budget state.
func (r *RedisRecoveryStore) SaveRecoveryState(ctx context.Context, state *RecoveryState) error {
	data, err := json.Marshal(state)
	if err != nil {
		logrus.Errorf("failed to marshal recovery state: %v", err)
		return fmt.Errorf("failed to marshal recovery state: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		logrus.Errorf("failed to set recovery state: %v", err)
		return fmt.Errorf("failed to set recovery state: %w", err)
	}

	logrus.Debugf("saved recovery state: used=%d period=%s", state.FreezesUsed, state.CurrentPeriodStart)
	return nil
}
