// Package observability exposes prometheus metrics for batch runs.
package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

// Metrics aggregates the processing counters. A fresh registry per
// instance keeps tests independent of global state.
type Metrics struct {
	registry *prometheus.Registry

	documentsProcessed *prometheus.CounterVec
	stageOutcomes      *prometheus.CounterVec
	processingSeconds  prometheus.Histogram
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		documentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frotadocs_documents_processed_total",
			Help: "Documents processed, by document type and resolution result.",
		}, []string{"doc_type", "resolved"}),
		stageOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frotadocs_resolution_stage_total",
			Help: "Name-resolution stage attempts, by stage and outcome.",
		}, []string{"stage", "outcome"}),
		processingSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "frotadocs_document_processing_seconds",
			Help:    "Wall time per document.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	reg.MustRegister(m.documentsProcessed, m.stageOutcomes, m.processingSeconds)
	return m
}

// ObserveDocument records one finished document.
func (m *Metrics) ObserveDocument(docType string, resolved bool, elapsed time.Duration) {
	m.documentsProcessed.WithLabelValues(docType, fmt.Sprintf("%t", resolved)).Inc()
	m.processingSeconds.Observe(elapsed.Seconds())
}

// StageObserver adapts the metrics to the resolver's observer hook.
func (m *Metrics) StageObserver() func(stage string, outcome resolve.StageOutcome) {
	return func(stage string, outcome resolve.StageOutcome) {
		m.stageOutcomes.WithLabelValues(stage, outcome.String()).Inc()
	}
}

// Handler serves the metrics in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics listener on the given port. Errors are logged
// rather than fatal: a batch run without metrics is still a batch run.
func (m *Metrics) Serve(port int, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info("metrics listener started", slog.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics listener stopped", slog.Any("err", err))
		}
	}()
}
