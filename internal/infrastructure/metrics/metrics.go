package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Chat turn counters
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "chat_turns_total",
			Help:      "Total chat turns processed",
		},
		[]string{"outcome"},
	)

	// Chat turn duration histogram
	ChatTurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "chat_turn_duration_seconds",
			Help:      "End-to-end chat turn duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"outcome"},
	)

	// Tool call counters
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "tool_calls_total",
			Help:      "Total task tool invocations requested by the model",
		},
		[]string{"tool_name", "status"},
	)

	// Tool duration histogram
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15},
		},
		[]string{"tool_name"},
	)

	// Provider call counters
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "provider_requests_total",
			Help:      "Total chat completion requests sent to the LLM provider",
		},
		[]string{"model", "status"},
	)

	// Provider call duration histogram
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "provider_request_duration_seconds",
			Help:      "LLM provider request duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// Token usage counters
	ProviderTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "provider_tokens_total",
			Help:      "Total tokens reported by the LLM provider",
		},
		[]string{"model", "kind"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordChatTurn records one processed chat turn
func RecordChatTurn(outcome string, durationSec float64) {
	ChatTurnsTotal.WithLabelValues(outcome).Inc()
	ChatTurnDuration.WithLabelValues(outcome).Observe(durationSec)
}

// RecordToolCall records a task tool invocation
func RecordToolCall(toolName, status string, durationSec float64) {
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
	ToolDuration.WithLabelValues(toolName).Observe(durationSec)
}

// RecordProviderRequest records one chat completion round trip
func RecordProviderRequest(model, status string, durationSec float64) {
	ProviderRequestsTotal.WithLabelValues(model, status).Inc()
	ProviderRequestDuration.WithLabelValues(model).Observe(durationSec)
}

// RecordTokenUsage records token counts reported by the provider
func RecordTokenUsage(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		ProviderTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		ProviderTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}
