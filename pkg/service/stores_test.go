package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestGetStreaks_NoData(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStreakStore(client, RedisStreakStoreConfig{})

	streaks, err := store.GetStreaks(context.Background())
	if err != nil {
		t.Fatalf("GetStreaks() error = %v", err)
	}
	if streaks == nil {
		t.Fatal("GetStreaks() returned nil mapping")
	}
	if len(streaks) != 0 {
		t.Errorf("GetStreaks() = %d entries, expected empty mapping", len(streaks))
	}
}

func TestStreakStore_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStreakStore(client, RedisStreakStoreConfig{})

	expected := map[string]*StreakRecord{
		"sleep":      {CurrentStreak: 3, LongestStreak: 10, LastLogDate: "2024-01-15", TotalLogs: 42},
		"meditation": {CurrentStreak: 1, LongestStreak: 1, LastLogDate: "2024-01-15", TotalLogs: 1},
	}

	if err := store.SaveStreaks(ctx, expected); err != nil {
		t.Fatalf("SaveStreaks() error = %v", err)
	}

	got, err := store.GetStreaks(ctx)
	if err != nil {
		t.Fatalf("GetStreaks() error = %v", err)
	}

	for category, rec := range expected {
		gotRec, ok := got[category]
		if !ok {
			t.Fatalf("category %s missing after round trip", category)
		}
		if *gotRec != *rec {
			t.Errorf("category %s = %+v, expected %+v", category, gotRec, rec)
		}
	}
}

func TestGetStreaks_MalformedJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	mr.Set(streakStoreKey, "{not json")

	store := NewRedisStreakStore(client, RedisStreakStoreConfig{})

	streaks, err := store.GetStreaks(context.Background())
	if err != nil {
		t.Fatalf("GetStreaks() error = %v, malformed data must degrade, not fail", err)
	}
	if len(streaks) != 0 {
		t.Errorf("GetStreaks() = %d entries, expected empty mapping", len(streaks))
	}
}

func TestStreakStore_KeyPrefix(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStreakStore(client, RedisStreakStoreConfig{KeyPrefix: "test:"})

	if err := store.SaveStreaks(ctx, map[string]*StreakRecord{"tasks": {CurrentStreak: 1}}); err != nil {
		t.Fatalf("SaveStreaks() error = %v", err)
	}

	if !mr.Exists("test:" + streakStoreKey) {
		t.Errorf("expected key %q in redis", "test:"+streakStoreKey)
	}
}

func TestGetRecoveryState_NoData(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisRecoveryStore(client, RedisRecoveryStoreConfig{})

	state, err := store.GetRecoveryState(context.Background())
	if err != nil {
		t.Fatalf("GetRecoveryState() error = %v", err)
	}
	if state.FreezesUsed != 0 {
		t.Errorf("FreezesUsed = %d, expected 0", state.FreezesUsed)
	}
	if state.FreezeHistory == nil {
		t.Error("FreezeHistory should be an empty slice, not nil")
	}
	if state.CurrentPeriodStart != "" {
		t.Errorf("CurrentPeriodStart = %q, expected empty", state.CurrentPeriodStart)
	}
}

func TestRecoveryStore_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisRecoveryStore(client, RedisRecoveryStoreConfig{})

	expected := &RecoveryState{
		FreezesUsed:    1,
		LastFreezeDate: "2024-01-10",
		FreezeHistory: []FreezeEntry{
			{Date: "2023-12-05", Reason: "travel"},
			{Date: "2024-01-10"},
		},
		CurrentPeriodStart: "2024-01",
	}

	if err := store.SaveRecoveryState(ctx, expected); err != nil {
		t.Fatalf("SaveRecoveryState() error = %v", err)
	}

	got, err := store.GetRecoveryState(ctx)
	if err != nil {
		t.Fatalf("GetRecoveryState() error = %v", err)
	}

	if got.FreezesUsed != expected.FreezesUsed {
		t.Errorf("FreezesUsed = %d, expected %d", got.FreezesUsed, expected.FreezesUsed)
	}
	if got.LastFreezeDate != expected.LastFreezeDate {
		t.Errorf("LastFreezeDate = %q, expected %q", got.LastFreezeDate, expected.LastFreezeDate)
	}
	if got.CurrentPeriodStart != expected.CurrentPeriodStart {
		t.Errorf("CurrentPeriodStart = %q, expected %q", got.CurrentPeriodStart, expected.CurrentPeriodStart)
	}
	if len(got.FreezeHistory) != 2 {
		t.Fatalf("FreezeHistory length = %d, expected 2", len(got.FreezeHistory))
	}
	if got.FreezeHistory[0] != expected.FreezeHistory[0] {
		t.Errorf("FreezeHistory[0] = %+v, expected %+v", got.FreezeHistory[0], expected.FreezeHistory[0])
	}
}

func TestGetRecoveryState_MalformedJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	mr.Set(recoveryStoreKey, "[]") // wrong shape

	store := NewRedisRecoveryStore(client, RedisRecoveryStoreConfig{})

	state, err := store.GetRecoveryState(context.Background())
	if err != nil {
		t.Fatalf("GetRecoveryState() error = %v, malformed data must degrade", err)
	}
	if state.FreezesUsed != 0 || len(state.FreezeHistory) != 0 {
		t.Errorf("expected zero-valued defaults, got %+v", state)
	}
}

func TestEnergyHistoryStore_RoundTripAndCap(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisEnergyHistoryStore(client, RedisEnergyHistoryStoreConfig{})

	history := make([]EnergyEntry, 0, energyHistoryCap+10)
	for i := 0; i < energyHistoryCap+10; i++ {
		history = append(history, EnergyEntry{Date: "2024-01-01", Score: i})
	}

	if err := store.SaveHistory(ctx, history); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	got, err := store.GetHistory(ctx)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(got) != energyHistoryCap {
		t.Errorf("history length = %d, expected cap %d", len(got), energyHistoryCap)
	}
	// Truncation keeps the most recent entries.
	if got[len(got)-1].Score != energyHistoryCap+9 {
		t.Errorf("last score = %d, expected %d", got[len(got)-1].Score, energyHistoryCap+9)
	}
}

func TestEnergyHistoryStore_StoredAsJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisEnergyHistoryStore(client, RedisEnergyHistoryStoreConfig{})

	if err := store.SaveHistory(ctx, []EnergyEntry{{Date: "2024-01-15", Score: 7}}); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	raw, err := mr.Get(energyStoreKey)
	if err != nil {
		t.Fatalf("raw get error = %v", err)
	}

	var decoded []EnergyEntry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("stored value is not valid JSON: %v", err)
	}
	if decoded[0].Date != "2024-01-15" || decoded[0].Score != 7 {
		t.Errorf("decoded = %+v, expected the saved entry", decoded[0])
	}
}

func TestHealthChecker(t *testing.T) {
	client, mr := setupTestRedis(t)

	checker := NewHealthChecker(client)
	if err := checker.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v, expected healthy", err)
	}

	mr.Close()
	if err := checker.Check(context.Background()); err == nil {
		t.Error("Check() expected error after redis shutdown")
	}
}
