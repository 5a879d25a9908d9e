package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/service"
)

const (
	// DefaultFreezeQuota is the number of freezes allowed per calendar month.
	DefaultFreezeQuota = 1

	recoveryLockKey = "streak_recovery"

	reasonQuotaExhausted = "quota exhausted for this period"
	reasonAlreadyFrozen  = "already frozen today"
)

// FreezeCheck is the answer to "can I freeze today?".
type FreezeCheck struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason,omitempty"`
	Remaining int    `json:"remaining"`
}

// FreezeResult is the outcome of a freeze attempt. Denials are results, not
// errors; only storage failures surface as errors.
type FreezeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FreezeStats summarizes freeze usage for display.
type FreezeStats struct {
	TotalFreezesUsed int    `json:"totalFreezesUsed"`
	FreezesThisMonth int    `json:"freezesThisMonth"`
	FreezesRemaining int    `json:"freezesRemaining"`
	LastFreezeDate   string `json:"lastFreezeDate,omitempty"`
	NextResetDate    string `json:"nextResetDate"`
}

// FreezeManager owns the persisted RecoveryState and enforces the monthly
// freeze budget.
type FreezeManager struct {
	store service.RecoveryStore
	clock calendar.Clock
	locks *common.KeyedMutex
	quota int
}

type FreezeManagerConfig struct {
	// Quota overrides the per-month freeze budget. Zero means the default.
	Quota int
}

// NewFreezeManager creates a freeze manager.
func NewFreezeManager(store service.RecoveryStore, clock calendar.Clock, locks *common.KeyedMutex, cfg FreezeManagerConfig) *FreezeManager {
	quota := cfg.Quota
	if quota <= 0 {
		quota = DefaultFreezeQuota
	}
	return &FreezeManager{
		store: store,
		clock: clock,
		locks: locks,
		quota: quota,
	}
}

// CanFreeze reports whether a freeze is allowed right now.
//
// Note the side effect: when the calendar month has rolled over since the
// persisted period, the counter is reset and persisted immediately, even
// though this is nominally a read-only query. Callers must expect a write.
func (m *FreezeManager) CanFreeze(ctx context.Context) (*FreezeCheck, error) {
	m.locks.Lock(recoveryLockKey)
	defer m.locks.Unlock(recoveryLockKey)

	state, err := m.store.GetRecoveryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recovery state: %w", err)
	}

	check, _, err := m.evaluate(ctx, state)
	return check, err
}

// evaluate applies the period rollover (persisting it) and computes the
// freeze verdict against the given state. Callers must hold the lock.
func (m *FreezeManager) evaluate(ctx context.Context, state *service.RecoveryState) (*FreezeCheck, *service.RecoveryState, error) {
	now := m.clock.Now()
	period := calendar.MonthKey(now)
	today := calendar.DayKey(now)

	if state.CurrentPeriodStart != period {
		logrus.Infof("freeze period rollover: %s -> %s", state.CurrentPeriodStart, period)
		state.FreezesUsed = 0
		state.CurrentPeriodStart = period
		if err := m.store.SaveRecoveryState(ctx, state); err != nil {
			return nil, nil, fmt.Errorf("failed to persist period rollover: %w", err)
		}
	}

	if state.FreezesUsed >= m.quota {
		return &FreezeCheck{Allowed: false, Reason: reasonQuotaExhausted}, state, nil
	}
	if state.LastFreezeDate == today {
		return &FreezeCheck{Allowed: false, Reason: reasonAlreadyFrozen}, state, nil
	}

	return &FreezeCheck{Allowed: true, Remaining: m.quota - state.FreezesUsed}, state, nil
}

// Freeze consumes one freeze for today. On denial the state is untouched and
// the denial reason comes back as the message.
func (m *FreezeManager) Freeze(ctx context.Context, reason string) (*FreezeResult, error) {
	m.locks.Lock(recoveryLockKey)
	defer m.locks.Unlock(recoveryLockKey)

	state, err := m.store.GetRecoveryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recovery state: %w", err)
	}

	check, state, err := m.evaluate(ctx, state)
	if err != nil {
		return nil, err
	}
	if !check.Allowed {
		logrus.Infof("freeze denied: %s", check.Reason)
		return &FreezeResult{Success: false, Message: check.Reason}, nil
	}

	today := calendar.DayKey(m.clock.Now())
	state.FreezesUsed++
	state.LastFreezeDate = today
	state.FreezeHistory = append(state.FreezeHistory, service.FreezeEntry{Date: today, Reason: reason})

	if err := m.store.SaveRecoveryState(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist freeze: %w", err)
	}

	logrus.Infof("streak frozen for %s (used %d/%d this period)", today, state.FreezesUsed, m.quota)
	return &FreezeResult{Success: true, Message: fmt.Sprintf("streak frozen for %s", today)}, nil
}

// IsFrozen reports whether the given canonical day appears in the freeze
// history. Frozen status is derived from history, not LastFreezeDate, so any
// past date is queryable.
func (m *FreezeManager) IsFrozen(ctx context.Context, day string) (bool, error) {
	state, err := m.store.GetRecoveryState(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load recovery state: %w", err)
	}

	for _, entry := range state.FreezeHistory {
		if entry.Date == day {
			return true, nil
		}
	}
	return false, nil
}

// AllFrozen reports whether every one of the given days was frozen. An empty
// day list is never considered frozen.
func (m *FreezeManager) AllFrozen(ctx context.Context, days []string) (bool, error) {
	if len(days) == 0 {
		return false, nil
	}

	state, err := m.store.GetRecoveryState(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load recovery state: %w", err)
	}
	if len(state.FreezeHistory) < len(days) {
		return false, nil
	}

	frozen := make(map[string]bool, len(state.FreezeHistory))
	for _, entry := range state.FreezeHistory {
		frozen[entry.Date] = true
	}
	for _, day := range days {
		if !frozen[day] {
			return false, nil
		}
	}
	return true, nil
}

// Stats summarizes freeze usage. TotalFreezesUsed counts the full history,
// unbounded by period.
func (m *FreezeManager) Stats(ctx context.Context) (*FreezeStats, error) {
	m.locks.Lock(recoveryLockKey)
	defer m.locks.Unlock(recoveryLockKey)

	state, err := m.store.GetRecoveryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recovery state: %w", err)
	}

	// Run the same rollover the queries apply so the period counter is
	// current before reporting.
	if _, state, err = m.evaluate(ctx, state); err != nil {
		return nil, err
	}

	remaining := m.quota - state.FreezesUsed
	if remaining < 0 {
		remaining = 0
	}

	now := m.clock.Now().UTC()
	nextReset := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	return &FreezeStats{
		TotalFreezesUsed: len(state.FreezeHistory),
		FreezesThisMonth: state.FreezesUsed,
		FreezesRemaining: remaining,
		LastFreezeDate:   state.LastFreezeDate,
		NextResetDate:    calendar.DayKey(nextReset),
	}, nil
}
