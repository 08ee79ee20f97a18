// Package metrics declares the Prometheus collectors exported by the tag
// engine. Collectors register with the default registry at init, so the API
// server only has to mount promhttp.Handler().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TaggingsInserted counts tagging rows created by reconciliation, by context.
	TaggingsInserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagengine_taggings_inserted_total",
		Help: "Tagging rows inserted by reconciliation.",
	}, []string{"context"})

	// TaggingsDeleted counts tagging rows removed by reconciliation or cascade, by context.
	// Cascades delete across contexts and are labelled "*".
	TaggingsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagengine_taggings_deleted_total",
		Help: "Tagging rows deleted by reconciliation or cascade.",
	}, []string{"context"})

	// ConflictsResolved counts uniqueness races that were resolved as already
	// satisfied, by kind ("tag" or "tagging").
	ConflictsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagengine_conflicts_resolved_total",
		Help: "Uniqueness conflicts resolved as already satisfied.",
	}, []string{"kind"})

	// TagsCreated counts canonical tags created by the registry.
	TagsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tagengine_tags_created_total",
		Help: "Tags created on first use.",
	})

	// ReconcileDuration observes the wall time of each reconcile call.
	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tagengine_reconcile_duration_seconds",
		Help:    "Duration of tag-set reconciliation.",
		Buckets: prometheus.DefBuckets,
	})
)
