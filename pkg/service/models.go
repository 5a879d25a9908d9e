package service

// StreakRecord is the persisted per-category streak state. Records are
// mutated only through the streak engine; stores just move them in and out
// of Redis.
type StreakRecord struct {
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastLogDate   string `json:"lastLogDate"` // canonical YYYY-MM-DD, "" before first log
	TotalLogs     int    `json:"totalLogs"`
}

// FreezeEntry is one consumed streak freeze. History is append-only.
type FreezeEntry struct {
	Date   string `json:"date"` // canonical YYYY-MM-DD
	Reason string `json:"reason,omitempty"`
}

// RecoveryState is the persisted streak-freeze budget state. FreezesUsed is
// bounded by the monthly quota and resets when CurrentPeriodStart falls
// behind the wall-clock period.
type RecoveryState struct {
	FreezesUsed        int           `json:"freezesUsed"`
	LastFreezeDate     string        `json:"lastFreezeDate,omitempty"`
	FreezeHistory      []FreezeEntry `json:"freezeHistory"`
	CurrentPeriodStart string        `json:"currentPeriodStart"` // canonical YYYY-MM
}

// EnergyEntry is one recorded daily energy score, keyed by canonical day.
type EnergyEntry struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}
