package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/service"
)

// testClock is a mutable fixed clock shared by engine and freeze manager so
// tests can walk through days.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) advanceDays(n int) { c.t = c.t.AddDate(0, 0, n) }

func testCategories() *Config {
	return NewConfig(
		CategoryConfig{Key: "sleep", DisplayName: "Sleep"},
		CategoryConfig{Key: "meditation", DisplayName: "Meditation"},
	)
}

func setupEngine(t *testing.T, clock *testClock) (*Engine, *FreezeManager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	locks := common.NewKeyedMutex()

	freezes := NewFreezeManager(
		service.NewRedisRecoveryStore(client, service.RedisRecoveryStoreConfig{}),
		clock, locks, FreezeManagerConfig{},
	)
	engine := NewEngine(
		service.NewRedisStreakStore(client, service.RedisStreakStoreConfig{}),
		freezes, testCategories(), clock, locks,
	)

	return engine, freezes, mr
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)}
}

func TestLogActivity_FirstLog(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	rec, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	if rec.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, expected 1", rec.CurrentStreak)
	}
	if rec.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, expected 1", rec.LongestStreak)
	}
	if rec.LastLogDate != "2024-01-10" {
		t.Errorf("LastLogDate = %s, expected 2024-01-10", rec.LastLogDate)
	}
	if rec.TotalLogs != 1 {
		t.Errorf("TotalLogs = %d, expected 1", rec.TotalLogs)
	}
}

func TestLogActivity_SameDayIdempotent(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	first, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	second, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	if *second != *first {
		t.Errorf("re-log same day changed record: %+v vs %+v", second, first)
	}
	if second.TotalLogs != 1 {
		t.Errorf("TotalLogs = %d, expected 1 after same-day re-log", second.TotalLogs)
	}
}

func TestLogActivity_ConsecutiveDaysIncrement(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		rec, err := engine.LogActivity(ctx, "sleep")
		if err != nil {
			t.Fatalf("LogActivity() day %d error = %v", day, err)
		}
		if rec.CurrentStreak != day {
			t.Errorf("day %d: CurrentStreak = %d, expected %d", day, rec.CurrentStreak, day)
		}
		if rec.LongestStreak < rec.CurrentStreak {
			t.Errorf("day %d: longest %d < current %d", day, rec.LongestStreak, rec.CurrentStreak)
		}
		clock.advanceDays(1)
	}
}

func TestLogActivity_GapResets(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
			t.Fatalf("LogActivity() error = %v", err)
		}
		clock.advanceDays(1)
	}

	// Skip a day: log on D, nothing on D+1, log on D+2.
	clock.advanceDays(1)

	rec, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	if rec.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, expected reset to 1 after gap", rec.CurrentStreak)
	}
	if rec.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, expected 3 preserved through reset", rec.LongestStreak)
	}
	if rec.TotalLogs != 4 {
		t.Errorf("TotalLogs = %d, expected 4", rec.TotalLogs)
	}
}

func TestLogActivity_FrozenGapContinues(t *testing.T) {
	clock := newTestClock()
	engine, freezes, _ := setupEngine(t, clock)
	ctx := context.Background()

	// Real log on day D-1.
	if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	// Freeze day D.
	clock.advanceDays(1)
	res, err := freezes.Freeze(ctx, "sick day")
	if err != nil {
		t.Fatalf("Freeze() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Freeze() denied: %s", res.Message)
	}

	// Log on day D+1: streak must continue, not reset.
	clock.advanceDays(1)
	rec, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	if rec.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, expected 2 (continuity across frozen day)", rec.CurrentStreak)
	}
}

func TestLogActivity_PartiallyFrozenGapResets(t *testing.T) {
	clock := newTestClock()
	engine, freezes, _ := setupEngine(t, clock)
	ctx := context.Background()

	if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	// Freeze only the first of two missed days.
	clock.advanceDays(1)
	if _, err := freezes.Freeze(ctx, ""); err != nil {
		t.Fatalf("Freeze() error = %v", err)
	}

	clock.advanceDays(2)
	rec, err := engine.LogActivity(ctx, "sleep")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	if rec.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, expected reset (gap only partially frozen)", rec.CurrentStreak)
	}
}

func TestLogActivity_CategoriesIndependent(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	clock.advanceDays(1)
	if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	rec, err := engine.LogActivity(ctx, "meditation")
	if err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}
	if rec.CurrentStreak != 1 {
		t.Errorf("meditation CurrentStreak = %d, expected independent 1", rec.CurrentStreak)
	}
}

func TestLogActivity_UnknownCategory(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)

	_, err := engine.LogActivity(context.Background(), "gaming")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("LogActivity() error = %v, expected ErrUnknownCategory", err)
	}
}

func TestGetStreak_SynthesizesDefault(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)

	rec, err := engine.GetStreak(context.Background(), "sleep")
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if rec.CurrentStreak != 0 || rec.LastLogDate != "" || rec.TotalLogs != 0 {
		t.Errorf("GetStreak() = %+v, expected zero-valued record", rec)
	}
}

func TestAllStreaks_OmitsUnloggedCategories(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	if _, err := engine.LogActivity(ctx, "sleep"); err != nil {
		t.Fatalf("LogActivity() error = %v", err)
	}

	all, err := engine.AllStreaks(ctx)
	if err != nil {
		t.Fatalf("AllStreaks() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("AllStreaks() = %d entries, expected 1", len(all))
	}
	if _, ok := all["meditation"]; ok {
		t.Error("AllStreaks() must not synthesize absent categories")
	}
}

func TestLogActivity_LongestNeverBelowCurrent(t *testing.T) {
	clock := newTestClock()
	engine, _, _ := setupEngine(t, clock)
	ctx := context.Background()

	// Mixed sequence of continuations and gaps.
	gaps := []int{1, 1, 2, 1, 1, 1, 3, 1}
	for _, g := range gaps {
		rec, err := engine.LogActivity(ctx, "sleep")
		if err != nil {
			t.Fatalf("LogActivity() error = %v", err)
		}
		if rec.LongestStreak < rec.CurrentStreak {
			t.Fatalf("invariant violated: longest %d < current %d", rec.LongestStreak, rec.CurrentStreak)
		}
		clock.advanceDays(g)
	}
}
