package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_agent_requests_total",
		Help: "Total number of pipeline runs by outcome",
	}, []string{"outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "golf_agent_stage_duration_seconds",
		Help:    "Time spent in each pipeline stage",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"stage"})

	// ToolInvocations counts tool calls by tool and outcome.
	ToolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_agent_tool_invocations_total",
		Help: "Tool invocations by tool and outcome (success, degraded, error)",
	}, []string{"tool", "outcome"})

	routeDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_agent_route_decisions_total",
		Help: "Router decisions by policy and chosen label",
	}, []string{"policy", "tool"})
)

// RecordRequest counts a finished pipeline run. outcome is "success" or "error".
func RecordRequest(outcome string) {
	requestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long a stage (route, tool, summarize) took.
func ObserveStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func RecordToolInvocation(tool, outcome string) {
	ToolInvocations.WithLabelValues(tool, outcome).Inc()
}

func RecordRoute(policy, tool string) {
	routeDecisions.WithLabelValues(policy, tool).Inc()
}
