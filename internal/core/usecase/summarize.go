package usecase

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
)

type Options struct {
	OCRFallbackMinChars int
}

type SummarizeDocumentUseCase struct {
	images     ports.ImageLoader
	pdfs       ports.PDFExtractor
	ocr        ports.OCREngine
	summarizer ports.Summarizer
	observer   ports.PipelineObserver
	opts       Options
}

func NewSummarizeDocumentUseCase(
	images ports.ImageLoader,
	pdfs ports.PDFExtractor,
	ocr ports.OCREngine,
	summarizer ports.Summarizer,
	observer ports.PipelineObserver,
	opts Options,
) *SummarizeDocumentUseCase {
	if observer == nil {
		observer = ports.NopPipelineObserver{}
	}
	if opts.OCRFallbackMinChars <= 0 {
		opts.OCRFallbackMinChars = DefaultOCRFallbackMinChars
	}
	return &SummarizeDocumentUseCase{
		images:     images,
		pdfs:       pdfs,
		ocr:        ocr,
		summarizer: summarizer,
		observer:   observer,
		opts:       opts,
	}
}

func (uc *SummarizeDocumentUseCase) Summarize(ctx context.Context, doc domain.DocumentBytes, tier domain.LengthTier) (result *domain.SummaryResult, err error) {
	started := time.Now()
	stats := domain.PipelineStats{Kind: doc.Kind}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.WrapError(domain.ErrInternal, "summarize document", fmt.Errorf("recovered panic: %v", r))
		}
		uc.observer.ObservePipeline(stats, pipelineStatus(err), time.Since(started).Seconds())
	}()

	if !doc.Kind.Supported() {
		return nil, domain.WrapError(domain.ErrUnsupportedKind, "summarize document", fmt.Errorf("kind %q", doc.Kind))
	}

	raw, err := uc.extract(ctx, doc, &stats)
	if err != nil {
		return nil, err
	}

	text := NormalizeWhitespace(raw)
	if text.Empty() {
		return nil, domain.WrapError(domain.ErrExtractionEmpty, "summarize document", errors.New("no text after normalization"))
	}

	summary := uc.summarizer.Summarize(text.String(), tier)
	stats.KeyPoints = len(summary.KeyPoints)

	slog.Info("document_summarized",
		"document", doc.Name,
		"kind", string(doc.Kind),
		"length", string(tier),
		"chars", len([]rune(text)),
		"key_points", stats.KeyPoints,
		"fallback_ocr", stats.FallbackUsed,
		"duration_ms", float64(time.Since(started).Microseconds())/1000.0,
	)
	return &summary, nil
}

func (uc *SummarizeDocumentUseCase) extract(ctx context.Context, doc domain.DocumentBytes, stats *domain.PipelineStats) (string, error) {
	if doc.Kind == domain.KindPDF {
		return uc.extractPDF(ctx, doc, stats)
	}

	img, err := uc.images.Load(doc.Data, doc.Kind)
	if err != nil {
		return "", wrapInternal("load image", err)
	}
	texts := uc.recognizeAll(ctx, []image.Image{img}, stats)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", nil
	}
	return texts[0], nil
}

func (uc *SummarizeDocumentUseCase) extractPDF(ctx context.Context, doc domain.DocumentBytes, stats *domain.PipelineStats) (string, error) {
	content, err := uc.pdfs.Extract(ctx, doc.Data)
	if err != nil {
		return "", wrapInternal("extract pdf", err)
	}
	stats.Pages = content.Pages
	stats.PagesSkipped = content.PagesSkipped
	stats.ImagesRecovered = len(content.Images)
	if len(content.Images) > 0 {
		stats.ImagesByFilter = make(map[string]int)
		for _, img := range content.Images {
			stats.ImagesByFilter[img.Filter]++
		}
	}

	if !needsOCRFallback(content.Text, len(content.Images), uc.opts.OCRFallbackMinChars) {
		return content.Text, nil
	}

	stats.FallbackUsed = true
	slog.Info("ocr_fallback_triggered",
		"document", doc.Name,
		"native_chars", len([]rune(content.Text)),
		"images", len(content.Images),
	)

	images := make([]image.Image, 0, len(content.Images))
	for _, recovered := range content.Images {
		images = append(images, recovered.Image)
	}
	texts := uc.recognizeAll(ctx, images, stats)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return appendOCRText(content.Text, texts), nil
}

// recognizeAll runs OCR serially. A failing image is logged and skipped.
func (uc *SummarizeDocumentUseCase) recognizeAll(ctx context.Context, images []image.Image, stats *domain.PipelineStats) []string {
	out := make([]string, 0, len(images))
	for i, img := range images {
		if ctx.Err() != nil {
			break
		}
		stats.OCRAttempted++
		text, err := uc.ocr.Recognize(ctx, img)
		if err != nil {
			stats.OCRFailed++
			slog.Warn("ocr_image_failed", "image", i, "error", err)
			continue
		}
		out = append(out, text)
	}
	return out
}

// wrapInternal keeps typed errors and marks anything else as internal.
func wrapInternal(operation string, err error) error {
	switch {
	case domain.IsKind(err, domain.ErrDecode),
		domain.IsKind(err, domain.ErrUnsupportedKind),
		domain.IsKind(err, domain.ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return domain.WrapError(domain.ErrInternal, operation, err)
	}
}

func pipelineStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsKind(err, domain.ErrExtractionEmpty):
		return "empty"
	case domain.IsKind(err, domain.ErrDecode):
		return "decode_error"
	case domain.IsKind(err, domain.ErrUnsupportedKind):
		return "unsupported"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
