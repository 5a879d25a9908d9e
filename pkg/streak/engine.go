// Package streak implements the habit-streak continuity engine and the
// monthly freeze/recovery budget that shields single days from breaking a
// streak.
package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/service"
)

// streaksLockKey serializes read-modify-write cycles against the streak
// storage key.
const streaksLockKey = "streaks"

// ErrUnknownCategory is returned when a category outside the configured set
// is logged or queried.
var ErrUnknownCategory = errors.New("unknown category")

// FreezeChecker is the slice of the freeze subsystem the continuity engine
// needs: whether every day in a logging gap was frozen.
type FreezeChecker interface {
	AllFrozen(ctx context.Context, days []string) (bool, error)
}

// Engine is the per-category streak continuity state machine. All record
// mutation goes through LogActivity; nothing else writes StreakRecords.
type Engine struct {
	store      service.StreakStore
	freezes    FreezeChecker
	categories *Config
	clock      calendar.Clock
	locks      *common.KeyedMutex
}

// NewEngine creates a streak engine. freezes may be nil, in which case every
// gap breaks the streak.
func NewEngine(store service.StreakStore, freezes FreezeChecker, categories *Config, clock calendar.Clock, locks *common.KeyedMutex) *Engine {
	return &Engine{
		store:      store,
		freezes:    freezes,
		categories: categories,
		clock:      clock,
		locks:      locks,
	}
}

// LogActivity records one activity log for today and returns the updated
// record. Re-logging the same category on the same canonical day is a no-op.
func (e *Engine) LogActivity(ctx context.Context, category string) (*service.StreakRecord, error) {
	if !e.categories.Has(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	e.locks.Lock(streaksLockKey)
	defer e.locks.Unlock(streaksLockKey)

	streaks, err := e.store.GetStreaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}

	record, ok := streaks[category]
	if !ok {
		record = &service.StreakRecord{}
	}

	now := e.clock.Now()
	today := calendar.DayKey(now)
	yesterday := calendar.DayKey(now.AddDate(0, 0, -1))

	// Idempotent re-log within the same day.
	if record.LastLogDate == today {
		logrus.Debugf("category %s already logged on %s", category, today)
		return record, nil
	}

	switch {
	case record.LastLogDate == yesterday:
		record.CurrentStreak++
	case record.LastLogDate == "":
		record.CurrentStreak = 1
	default:
		continued, err := e.gapFullyFrozen(ctx, record.LastLogDate, today)
		if err != nil {
			return nil, err
		}
		if continued {
			logrus.Infof("category %s: gap since %s fully frozen, streak continues", category, record.LastLogDate)
			record.CurrentStreak++
		} else {
			logrus.Infof("category %s: streak reset after gap since %s", category, record.LastLogDate)
			record.CurrentStreak = 1
		}
	}

	if record.CurrentStreak > record.LongestStreak {
		record.LongestStreak = record.CurrentStreak
	}
	record.LastLogDate = today
	record.TotalLogs++

	streaks[category] = record
	if err := e.store.SaveStreaks(ctx, streaks); err != nil {
		return nil, fmt.Errorf("failed to persist streaks: %w", err)
	}

	logrus.Infof("logged %s: current=%d longest=%d total=%d",
		category, record.CurrentStreak, record.LongestStreak, record.TotalLogs)
	return record, nil
}

// gapFullyFrozen reports whether every day strictly between lastLog and
// today was frozen. A frozen day counts as logged for continuity purposes.
func (e *Engine) gapFullyFrozen(ctx context.Context, lastLog, today string) (bool, error) {
	if e.freezes == nil {
		return false, nil
	}

	from, err := calendar.ParseDayKey(lastLog)
	if err != nil {
		// A record with an unparseable last log date cannot continue.
		logrus.Warnf("unparseable lastLogDate %q, treating gap as broken", lastLog)
		return false, nil
	}

	var gap []string
	for d := from.AddDate(0, 0, 1); calendar.DayKey(d) < today; d = d.AddDate(0, 0, 1) {
		gap = append(gap, calendar.DayKey(d))
	}
	if len(gap) == 0 {
		return false, nil
	}

	frozen, err := e.freezes.AllFrozen(ctx, gap)
	if err != nil {
		return false, fmt.Errorf("failed to check frozen gap: %w", err)
	}
	return frozen, nil
}

// GetStreak returns the record for a single category, synthesizing a
// zero-valued record when the category has never been logged.
func (e *Engine) GetStreak(ctx context.Context, category string) (*service.StreakRecord, error) {
	if !e.categories.Has(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	streaks, err := e.store.GetStreaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}

	if record, ok := streaks[category]; ok {
		return record, nil
	}
	return &service.StreakRecord{}, nil
}

// AllStreaks returns the full persisted mapping. Categories never logged are
// absent; defaults are only synthesized by the single-category accessors.
func (e *Engine) AllStreaks(ctx context.Context) (map[string]*service.StreakRecord, error) {
	streaks, err := e.store.GetStreaks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}
	return streaks, nil
}
