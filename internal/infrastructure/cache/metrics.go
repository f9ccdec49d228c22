package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifehub",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Query cache hits by namespace.",
		},
		[]string{"namespace"},
	)

	missesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifehub",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Query cache misses by namespace.",
		},
		[]string{"namespace"},
	)

	invalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifehub",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Namespace invalidations triggered by mutations.",
		},
		[]string{"namespace"},
	)
)
