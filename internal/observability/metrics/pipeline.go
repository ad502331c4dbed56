package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

// PipelineMetrics records summarization runs. It implements
// ports.PipelineObserver.
type PipelineMetrics struct {
	service string

	documentsTotal    *prometheus.CounterVec
	documentDuration  *prometheus.HistogramVec
	ocrImagesTotal    *prometheus.CounterVec
	ocrFallbackTotal  *prometheus.CounterVec
	pagesSkippedTotal *prometheus.CounterVec
	imagesRecovered   *prometheus.CounterVec
	summarySentences  *prometheus.HistogramVec
	breakerState      *prometheus.GaugeVec
}

func NewPipelineMetrics(service string, registerer prometheus.Registerer) *PipelineMetrics {
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total summarized documents by kind and status.",
		},
		[]string{"service", "kind", "status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "document_duration_seconds",
			Help:      "End-to-end pipeline duration in seconds by kind.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service", "kind"},
	)
	ocrImagesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ocr",
			Name:      "images_total",
			Help:      "Images sent to OCR by outcome.",
		},
		[]string{"service", "status"},
	)
	ocrFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ocr",
			Name:      "fallback_total",
			Help:      "PDF documents whose text layer was supplemented by OCR.",
		},
		[]string{"service"},
	)
	pagesSkippedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pdf",
			Name:      "pages_skipped_total",
			Help:      "PDF pages skipped after a per-page failure.",
		},
		[]string{"service"},
	)
	imagesRecovered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pdf",
			Name:      "images_recovered_total",
			Help:      "Embedded PDF images recovered for OCR by stream filter.",
		},
		[]string{"service", "filter"},
	)
	summarySentences := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "summary",
			Name:      "sentences",
			Help:      "Distribution of selected sentences per summary.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
		[]string{"service"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ocr",
			Name:      "breaker_open",
			Help:      "1 while the OCR circuit breaker is not closed.",
		},
		[]string{"service", "operation"},
	)

	registerer.MustRegister(
		documentsTotal,
		documentDuration,
		ocrImagesTotal,
		ocrFallbackTotal,
		pagesSkippedTotal,
		imagesRecovered,
		summarySentences,
		breakerState,
	)

	return &PipelineMetrics{
		service:           service,
		documentsTotal:    documentsTotal,
		documentDuration:  documentDuration,
		ocrImagesTotal:    ocrImagesTotal,
		ocrFallbackTotal:  ocrFallbackTotal,
		pagesSkippedTotal: pagesSkippedTotal,
		imagesRecovered:   imagesRecovered,
		summarySentences:  summarySentences,
		breakerState:      breakerState,
	}
}

func (m *PipelineMetrics) ObservePipeline(stats domain.PipelineStats, status string, elapsedSeconds float64) {
	kind := string(stats.Kind)
	if kind == "" {
		kind = "unknown"
	}
	m.documentsTotal.WithLabelValues(m.service, kind, status).Inc()
	m.documentDuration.WithLabelValues(m.service, kind).Observe(elapsedSeconds)

	if ok := stats.OCRAttempted - stats.OCRFailed; ok > 0 {
		m.ocrImagesTotal.WithLabelValues(m.service, "ok").Add(float64(ok))
	}
	if stats.OCRFailed > 0 {
		m.ocrImagesTotal.WithLabelValues(m.service, "failed").Add(float64(stats.OCRFailed))
	}
	if stats.FallbackUsed {
		m.ocrFallbackTotal.WithLabelValues(m.service).Inc()
	}
	if stats.PagesSkipped > 0 {
		m.pagesSkippedTotal.WithLabelValues(m.service).Add(float64(stats.PagesSkipped))
	}
	for filter, n := range stats.ImagesByFilter {
		if n > 0 {
			m.imagesRecovered.WithLabelValues(m.service, filter).Add(float64(n))
		}
	}
	if status == "ok" {
		m.summarySentences.WithLabelValues(m.service).Observe(float64(stats.KeyPoints))
	}
}

// ObserveBreakerState matches resilience.Config.OnStateChange.
func (m *PipelineMetrics) ObserveBreakerState(operation, _, to string) {
	value := 1.0
	if to == "closed" {
		value = 0
	}
	m.breakerState.WithLabelValues(m.service, operation).Set(value)
}
