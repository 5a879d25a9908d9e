package service

import (
	"context"
)

// Store interfaces for the persistence port. Having interfaces rather than
// concrete Redis types lets the engines take test doubles backed by an
// in-memory map (miniredis in practice).

// StreakStore persists the full category -> StreakRecord mapping under a
// single key.
type StreakStore interface {
	GetStreaks(ctx context.Context) (map[string]*StreakRecord, error)
	SaveStreaks(ctx context.Context, streaks map[string]*StreakRecord) error
}

// RecoveryStore persists the single freeze-budget state object.
type RecoveryStore interface {
	GetRecoveryState(ctx context.Context) (*RecoveryState, error)
	SaveRecoveryState(ctx context.Context, state *RecoveryState) error
}

// EnergyHistoryStore persists the ordered daily energy score history.
type EnergyHistoryStore interface {
	GetHistory(ctx context.Context) ([]EnergyEntry, error)
	SaveHistory(ctx context.Context, history []EnergyEntry) error
}
