// Package metrics defines the application's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ActivityLogsTotal counts accepted activity logs per category.
	ActivityLogsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innergy_activity_logs_total",
			Help: "Total number of activity logs recorded",
		},
		[]string{"category"},
	)

	// MilestonesTotal counts streak milestones reached per category.
	MilestonesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innergy_streak_milestones_total",
			Help: "Total number of streak milestones reached",
		},
		[]string{"category"},
	)

	// FreezesTotal counts freeze attempts by outcome (granted/denied).
	FreezesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "innergy_streak_freezes_total",
			Help: "Total number of streak freeze attempts",
		},
		[]string{"result"},
	)

	// EnergyScoresTotal counts recorded daily energy scores.
	EnergyScoresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "innergy_energy_scores_total",
			Help: "Total number of daily energy scores recorded",
		},
	)
)

// Register registers all application collectors on the given registry.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		ActivityLogsTotal,
		MilestonesTotal,
		FreezesTotal,
		EnergyScoresTotal,
	)
}
