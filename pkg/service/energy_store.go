package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	energyStoreKey = "innergy:energy_history"

	// energyHistoryCap bounds the stored history; the trend classifier only
	// ever looks at recent entries.
	energyHistoryCap = 90
)

// RedisEnergyHistoryStore implements EnergyHistoryStore using a single Redis
// key holding the JSON array of daily entries, oldest first.
type RedisEnergyHistoryStore struct {
	client redis.UniversalClient
	cfg    RedisEnergyHistoryStoreConfig
}

type RedisEnergyHistoryStoreConfig struct {
	KeyPrefix string
}

// NewRedisEnergyHistoryStore creates a new Redis-backed energy history store.
func NewRedisEnergyHistoryStore(client redis.UniversalClient, cfg RedisEnergyHistoryStoreConfig) *RedisEnergyHistoryStore {
	return &RedisEnergyHistoryStore{
		client: client,
		cfg:    cfg,
	}
}

func (r *RedisEnergyHistoryStore) key() string {
	return r.cfg.KeyPrefix + energyStoreKey
}

// GetHistory retrieves the stored energy history, oldest first. Missing key
// and malformed JSON degrade to an empty history.
func (r *RedisEnergyHistoryStore) GetHistory(ctx context.Context) ([]EnergyEntry, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		return []EnergyEntry{}, nil
	}
	if err != nil {
		logrus.Errorf("failed to get energy history: %v", err)
		return nil, fmt.Errorf("failed to get energy history: %w", err)
	}

	var history []EnergyEntry
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		logrus.Warnf("malformed energy history, degrading to empty: %v", err)
		return []EnergyEntry{}, nil
	}

	return history, nil
}

// SaveHistory overwrites the energy history, truncating to the most recent
// entries when over the cap.
func (r *RedisEnergyHistoryStore) SaveHistory(ctx context.Context, history []EnergyEntry) error {
	if len(history) > energyHistoryCap {
		history = history[len(history)-energyHistoryCap:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		logrus.Errorf("failed to marshal energy history: %v", err)
		return fmt.Errorf("failed to marshal energy history: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		logrus.Errorf("failed to set energy history: %v", err)
		return fmt.Errorf("failed to set energy history: %w", err)
	}

	return nil
}
