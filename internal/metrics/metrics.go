package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chat_relay"

// Collector holds the relay's prometheus metrics on a private registry.
//
// Metrics:
//   - chat_relay_requests_total: handled requests by HTTP status
//   - chat_relay_provider_requests_total: upstream calls by provider and outcome
//   - chat_relay_provider_latency_seconds: upstream call latency
//   - chat_relay_provider_tokens_total: tokens reported by the upstream
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	tokens          *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total chat requests by response status",
			},
			[]string{"status"},
		),
		providerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Total upstream calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_latency_seconds",
				Help:      "Upstream call latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_tokens_total",
				Help:      "Total tokens reported by upstream providers",
			},
			[]string{"provider"},
		),
	}
	c.registry.MustRegister(c.requests, c.providerCalls, c.providerLatency, c.tokens)
	return c
}

// ObserveRequest counts one handled request.
func (c *Collector) ObserveRequest(status int) {
	c.requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveProvider records one upstream call and its latency.
func (c *Collector) ObserveProvider(provider string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.providerCalls.WithLabelValues(provider, outcome).Inc()
	c.providerLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// AddTokens adds reported token usage. Non-positive counts are ignored.
func (c *Collector) AddTokens(provider string, n int) {
	if n <= 0 {
		return
	}
	c.tokens.WithLabelValues(provider).Add(float64(n))
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
