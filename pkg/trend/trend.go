// Package trend classifies the recent direction of the daily energy score
// history.
package trend

import (
	"context"
	"fmt"
	"sort"

	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/service"
)

// Direction is the classified trend of recent scores.
type Direction string

const (
	Rising       Direction = "rising"
	Declining    Direction = "declining"
	Steady       Direction = "steady"
	Insufficient Direction = "insufficient"
)

const (
	// defaultWindow is how many recent entries form the comparison window.
	defaultWindow = 7
	// defaultMinSamples is the fewest entries worth classifying at all.
	defaultMinSamples = 3
	// defaultThreshold is the mean-score delta below which the trend reads
	// as steady.
	defaultThreshold = 0.5

	energyLockKey = "energy_history"
)

// Report is the classification result plus the numbers behind it.
type Report struct {
	Direction     Direction `json:"direction"`
	Samples       int       `json:"samples"`
	RecentAverage float64   `json:"recentAverage"`
	PriorAverage  float64   `json:"priorAverage"`
}

// Classifier turns an ordered score history into a Direction. Pure; all
// state lives in the Aggregator.
type Classifier struct {
	window     int
	minSamples int
	threshold  float64
}

type ClassifierConfig struct {
	// Window overrides the comparison window size. Zero means default.
	Window int
	// MinSamples overrides the minimum entry count. Zero means default.
	MinSamples int
	// Threshold overrides the steady band. Zero means default.
	Threshold float64
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	c := &Classifier{
		window:     cfg.Window,
		minSamples: cfg.MinSamples,
		threshold:  cfg.Threshold,
	}
	if c.window <= 0 {
		c.window = defaultWindow
	}
	if c.minSamples <= 0 {
		c.minSamples = defaultMinSamples
	}
	if c.threshold <= 0 {
		c.threshold = defaultThreshold
	}
	return c
}

// Classify compares the mean of the most recent window against the window
// before it. With fewer than two windows of data the history is split in
// half instead.
func (c *Classifier) Classify(history []service.EnergyEntry) Report {
	n := len(history)
	if n < c.minSamples {
		return Report{Direction: Insufficient, Samples: n}
	}

	split := n - c.window
	if split < n/2 {
		split = n / 2
	}

	// The baseline is the window preceding the recent one, not the whole
	// long-run history.
	priorStart := split - c.window
	if priorStart < 0 {
		priorStart = 0
	}

	prior := mean(history[priorStart:split])
	recent := mean(history[split:])

	report := Report{Samples: n, RecentAverage: recent, PriorAverage: prior}
	switch {
	case recent-prior > c.threshold:
		report.Direction = Rising
	case prior-recent > c.threshold:
		report.Direction = Declining
	default:
		report.Direction = Steady
	}
	return report
}

func mean(entries []service.EnergyEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	return float64(sum) / float64(len(entries))
}

// Aggregator owns the persisted energy history and classifies it on demand.
type Aggregator struct {
	store      service.EnergyHistoryStore
	classifier *Classifier
	locks      *common.KeyedMutex
}

func NewAggregator(store service.EnergyHistoryStore, classifier *Classifier, locks *common.KeyedMutex) *Aggregator {
	return &Aggregator{
		store:      store,
		classifier: classifier,
		locks:      locks,
	}
}

// Record upserts the score for a canonical day and keeps the history sorted
// by day key (lexicographic order is date order for canonical keys).
func (a *Aggregator) Record(ctx context.Context, day string, score int) error {
	a.locks.Lock(energyLockKey)
	defer a.locks.Unlock(energyLockKey)

	history, err := a.store.GetHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load energy history: %w", err)
	}

	replaced := false
	for i := range history {
		if history[i].Date == day {
			history[i].Score = score
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, service.EnergyEntry{Date: day, Score: score})
		sort.Slice(history, func(i, j int) bool { return history[i].Date < history[j].Date })
	}

	if err := a.store.SaveHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to persist energy history: %w", err)
	}
	return nil
}

// Trend classifies the stored history.
func (a *Aggregator) Trend(ctx context.Context) (*Report, error) {
	history, err := a.store.GetHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load energy history: %w", err)
	}

	report := a.classifier.Classify(history)
	return &report, nil
}
