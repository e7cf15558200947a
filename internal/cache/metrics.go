package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landmarknav_cache_hits_total",
		Help: "Number of cache reads served from a live entry",
	})

	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landmarknav_cache_misses_total",
		Help: "Number of cache reads that found no live entry",
	})

	setsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landmarknav_cache_sets_total",
		Help: "Number of cache writes",
	})

	expiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landmarknav_cache_expired_total",
		Help: "Number of entries removed because their lifetime lapsed",
	})

	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landmarknav_cache_invalidations_total",
		Help: "Number of entries removed on request",
	})

	entriesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "landmarknav_cache_entries",
		Help: "Number of entries currently held, including expired entries not yet swept",
	})
)
