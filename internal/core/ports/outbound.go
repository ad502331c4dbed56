package ports

import (
	"context"
	"image"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

// ImageLoader decodes an image upload into an RGB pixel buffer.
type ImageLoader interface {
	Load(data []byte, kind domain.DocumentKind) (image.Image, error)
}

// PDFExtractor recovers the text layer and embedded images of a PDF.
type PDFExtractor interface {
	Extract(ctx context.Context, data []byte) (domain.PDFContent, error)
}

// OCREngine recognizes text in one decoded image.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Summarizer selects representative sentences from normalized text.
type Summarizer interface {
	Summarize(text string, tier domain.LengthTier) domain.SummaryResult
}

// PipelineObserver receives per-run statistics.
type PipelineObserver interface {
	ObservePipeline(stats domain.PipelineStats, status string, elapsedSeconds float64)
}

type NopPipelineObserver struct{}

func (NopPipelineObserver) ObservePipeline(domain.PipelineStats, string, float64) {}
