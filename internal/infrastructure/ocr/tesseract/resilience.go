package tesseract

import (
	"context"
	"errors"
	"image"

	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/resilience"
)

const recognizeOperation = "ocr.recognize"

// GuardedEngine trips a circuit breaker when the OCR backend keeps failing,
// so a broken Tesseract install fails fast for the remaining images.
type GuardedEngine struct {
	next     ports.OCREngine
	executor *resilience.Executor
}

func NewGuardedEngine(next ports.OCREngine, executor *resilience.Executor) *GuardedEngine {
	return &GuardedEngine{next: next, executor: executor}
}

func (g *GuardedEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if g.executor == nil {
		return g.next.Recognize(ctx, img)
	}
	var text string
	err := g.executor.Execute(ctx, recognizeOperation, func(ctx context.Context) error {
		out, err := g.next.Recognize(ctx, img)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, classifyOCRError)
	return text, err
}

// classifyOCRError keeps caller cancellation out of the breaker counts.
func classifyOCRError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
