// Package metrics exposes Prometheus instrumentation for the table store,
// the cache and the mutation engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder is the instrumentation surface used by the rest of the
// application. Collector implements it on Prometheus; Nop discards.
type Recorder interface {
	ObserveStoreCall(op, table, outcome string, duration time.Duration)
	RecordCacheHit(table string)
	RecordCacheMiss(table string)
	RecordMutation(kind, table, outcome string)
	RecordAccessDecision(allowed bool)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	storeCalls    *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	mutations     *prometheus.CounterVec
	accessChecked *prometheus.CounterVec
}

// NewCollector builds a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datahub_store_calls_total",
			Help: "Calls to the backing table store.",
		}, []string{"op", "table", "outcome"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datahub_store_call_duration_seconds",
			Help:    "Latency of backing table store calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datahub_cache_hits_total",
			Help: "Table reads served from the cache.",
		}, []string{"table"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datahub_cache_misses_total",
			Help: "Table reads that went to the store.",
		}, []string{"table"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datahub_mutations_total",
			Help: "Row mutations by kind and outcome.",
		}, []string{"kind", "table", "outcome"}),
		accessChecked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datahub_access_decisions_total",
			Help: "Authorization gate decisions.",
		}, []string{"allowed"}),
	}

	reg.MustRegister(
		c.storeCalls,
		c.storeLatency,
		c.cacheHits,
		c.cacheMisses,
		c.mutations,
		c.accessChecked,
	)

	return c
}

func (c *Collector) ObserveStoreCall(op, table, outcome string, duration time.Duration) {
	c.storeCalls.WithLabelValues(op, table, outcome).Inc()
	c.storeLatency.WithLabelValues(op).Observe(duration.Seconds())
}

func (c *Collector) RecordCacheHit(table string) {
	c.cacheHits.WithLabelValues(table).Inc()
}

func (c *Collector) RecordCacheMiss(table string) {
	c.cacheMisses.WithLabelValues(table).Inc()
}

func (c *Collector) RecordMutation(kind, table, outcome string) {
	c.mutations.WithLabelValues(kind, table, outcome).Inc()
}

func (c *Collector) RecordAccessDecision(allowed bool) {
	label := "false"
	if allowed {
		label = "true"
	}
	c.accessChecked.WithLabelValues(label).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that does nothing.
type Nop struct{}

func (Nop) ObserveStoreCall(string, string, string, time.Duration) {}
func (Nop) RecordCacheHit(string)                                  {}
func (Nop) RecordCacheMiss(string)                                 {}
func (Nop) RecordMutation(string, string, string)                  {}
func (Nop) RecordAccessDecision(bool)                              {}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
