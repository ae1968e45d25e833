// Package observability exposes Prometheus collectors for the store, the
// workout engine and the achievement evaluator.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "store",
		Name:      "write_failures_total",
		Help:      "Writes dropped because the storage substrate refused them.",
	})
	storeBytesUsed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "store",
		Name:      "bytes_used",
		Help:      "Bytes used by namespaced keys at the last size check.",
	})
	setsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workout",
		Name:      "sets_completed_total",
		Help:      "Sets completed by the workout engine.",
	})
	sessionsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workout",
		Name:      "sessions_completed_total",
		Help:      "Workout sessions finalized by the workout engine.",
	})
	achievementsAwarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "progress",
		Name:      "achievements_awarded_total",
		Help:      "Achievements awarded, by achievement type.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(storeWriteFailures, storeBytesUsed, setsCompleted, sessionsCompleted, achievementsAwarded)
}

// RecordStoreWriteFailure counts a dropped write.
func RecordStoreWriteFailure() {
	storeWriteFailures.Inc()
}

// SetStoreBytesUsed updates the storage size gauge.
func SetStoreBytesUsed(n int64) {
	storeBytesUsed.Set(float64(n))
}

// RecordSetCompleted counts a set logged by the engine.
func RecordSetCompleted() {
	setsCompleted.Inc()
}

// RecordSessionCompleted counts a finalized session.
func RecordSessionCompleted() {
	sessionsCompleted.Inc()
}

// RecordAchievementAwarded counts a newly awarded achievement.
func RecordAchievementAwarded(achievementType string) {
	achievementsAwarded.WithLabelValues(achievementType).Inc()
}
