// Package observability provides prometheus metrics and tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bichar_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// JudgmentGenerations counts judgment generator calls by persona, mood and outcome.
	JudgmentGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bichar_judgment_generations_total",
		Help: "Total judgment generation attempts by persona, mood and outcome",
	}, []string{"persona", "mood", "outcome"})

	// JudgmentLatency records judgment generation latency in seconds.
	JudgmentLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bichar_judgment_generation_latency_seconds",
		Help:    "Judgment generation latency in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})

	// ConfessionsCreated counts successfully persisted confessions by persona.
	ConfessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bichar_confessions_created_total",
		Help: "Total confessions created by persona",
	}, []string{"persona"})

	// Reactions counts accepted reactions by type.
	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bichar_reactions_total",
		Help: "Total reactions recorded by type",
	}, []string{"type"})
)
