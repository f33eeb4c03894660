package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_chat_replies_total",
			Help: "Chat messages answered, by the stage that produced the reply",
		},
		[]string{"source"},
	)

	providerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_provider_calls_total",
			Help: "Answer generator calls by provider and result",
		},
		[]string{"provider", "result"},
	)

	providerLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faqbot_provider_latency_seconds",
			Help:    "Answer generator call latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	escalations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_escalations_total",
			Help: "Escalation writes to the unanswered questions store by result",
		},
		[]string{"store", "result"},
	)
)

// RecordReply counts a reply by its source (faq, generated, escalated, error).
func RecordReply(source string) {
	chatReplies.WithLabelValues(source).Inc()
}

// RecordProviderCall counts one generator call and observes its latency.
func RecordProviderCall(provider string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	providerCalls.WithLabelValues(provider, result).Inc()
	providerLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordEscalation counts one escalation write attempt.
func RecordEscalation(store string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	escalations.WithLabelValues(store, result).Inc()
}
