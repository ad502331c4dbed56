package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/shagunnguptaa/DocSumm/internal/config"
	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
	"github.com/shagunnguptaa/DocSumm/internal/core/usecase"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/extractor/pdf"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/imaging"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/ocr/tesseract"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/resilience"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/summarizer/frequency"
	"github.com/shagunnguptaa/DocSumm/internal/observability/metrics"
)

type App struct {
	Config config.Config

	SummarizeUC ports.DocumentSummarizer
	HTTPMetrics *metrics.HTTPServerMetrics
	Pipeline    *metrics.PipelineMetrics
	OCRExecutor *resilience.Executor

	closeFn func()
}

// New wires the pipeline for one process. service labels logs and metrics.
func New(_ context.Context, cfg config.Config, service string) (*App, error) {
	httpMetrics := metrics.NewHTTPServerMetrics(service)
	pipelineMetrics := metrics.NewPipelineMetrics(service, httpMetrics.Registry())

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:          cfg.OCRBreakerEnabled,
		BreakerMinRequests:      uint32(max(cfg.OCRBreakerMinRequests, 0)),
		BreakerFailureRatio:     cfg.OCRBreakerFailureRatio,
		BreakerOpenTimeout:      cfg.OCRBreakerOpenTimeout(),
		BreakerHalfOpenMaxCalls: 1,
		OnStateChange:           pipelineMetrics.ObserveBreakerState,
	})

	ocrEngine := tesseract.NewGuardedEngine(
		tesseract.NewEngine(tesseract.Config{
			Languages:   cfg.Languages(),
			PageSegMode: cfg.OCRPageSegMode,
		}),
		executor,
	)

	summarizer := frequency.New(frequency.Options{
		ShortFraction:      cfg.SummaryShortFraction,
		MediumFraction:     cfg.SummaryMediumFraction,
		LongFraction:       cfg.SummaryLongFraction,
		HighlightCount:     cfg.SummaryHighlightCount,
		HighlightMinLength: cfg.SummaryHighlightMinLen,
	})

	summarizeUC := usecase.NewSummarizeDocumentUseCase(
		imaging.NewLoader(),
		pdf.NewExtractor(),
		ocrEngine,
		summarizer,
		pipelineMetrics,
		usecase.Options{OCRFallbackMinChars: cfg.OCRFallbackMinChars},
	)

	started := time.Now()
	return &App{
		Config:      cfg,
		SummarizeUC: summarizeUC,
		HTTPMetrics: httpMetrics,
		Pipeline:    pipelineMetrics,
		OCRExecutor: executor,
		closeFn: func() {
			slog.Info("app_closed", "service", service, "uptime_s", time.Since(started).Seconds())
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
