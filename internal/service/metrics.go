package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryResultsTotal counts answered queries by operation and outcome.
	QueryResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinestats_query_results_total",
			Help: "Total number of answered queries by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// QueryCacheLookupsTotal counts message cache lookups by result.
	QueryCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinestats_query_cache_lookups_total",
			Help: "Total number of rendered message cache lookups",
		},
		[]string{"operation", "result"},
	)
)

func recordOutcome(op string, err error) {
	QueryResultsTotal.WithLabelValues(op, outcomeLabel(err)).Inc()
}

func recordCacheLookup(op string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	QueryCacheLookupsTotal.WithLabelValues(op, result).Inc()
}
