package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики леджера классификаций. Отдаются на /metrics.
var (
	ClassificationCommits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_classification_commits_total",
		Help: "Committed classification versions.",
	})

	VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_classification_version_conflicts_total",
		Help: "Optimistic concurrency conflicts retried during commit.",
	})

	IntegrityFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_history_integrity_failures_total",
		Help: "Reads rejected because more than one current classification row was found.",
	})
)
