package pdf

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/imaging"
)

// Page is a read-only view of one PDF page.
type Page interface {
	Number() int
	Text() (string, error)
	Images() ([]ImageObject, error)
}

type Document interface {
	Pages() []Page
}

// Opener parses raw bytes into a Document.
type Opener func(data []byte) (Document, error)

// Extractor recovers the text layer and embedded images of a PDF. Failures
// on a single page or image are logged and skipped.
type Extractor struct {
	open Opener
}

func NewExtractor() *Extractor {
	return &Extractor{open: OpenDocument}
}

func NewExtractorWithOpener(open Opener) *Extractor {
	if open == nil {
		open = OpenDocument
	}
	return &Extractor{open: open}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (domain.PDFContent, error) {
	if len(data) == 0 {
		return domain.PDFContent{}, domain.WrapError(domain.ErrDecode, "open pdf", errors.New("empty payload"))
	}
	if err := ctx.Err(); err != nil {
		return domain.PDFContent{}, err
	}

	doc, err := attemptOpen(e.open, data)
	if err != nil {
		return domain.PDFContent{}, domain.WrapError(domain.ErrDecode, "open pdf", err)
	}
	pages := doc.Pages()
	skippedPages := make(map[int]struct{})

	content := domain.PDFContent{Pages: len(pages)}
	content.Text = extractText(pages, skippedPages)
	content.Images, content.ImagesSkipped = extractImages(pages, skippedPages)
	content.PagesSkipped = len(skippedPages)
	return content, nil
}

func attemptOpen(open Opener, data []byte) (Document, error) {
	o := attempt(func() (Document, error) {
		return open(data)
	})
	if o.err == nil && o.value == nil {
		return nil, errors.New("no document")
	}
	return o.value, o.err
}

func extractText(pages []Page, skipped map[int]struct{}) string {
	outcomes := make([]outcome[string], len(pages))
	for i, page := range pages {
		outcomes[i] = attempt(page.Text)
	}
	texts := collect(outcomes, func(i int, err error) {
		skipped[i] = struct{}{}
		slog.Debug("page_text_skipped", "page", pages[i].Number(), "error", err)
	})

	parts := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func extractImages(pages []Page, skipped map[int]struct{}) ([]domain.RecoveredImage, int) {
	objects := make([]outcome[[]ImageObject], len(pages))
	for i, page := range pages {
		objects[i] = attempt(page.Images)
	}

	var recovered []outcome[domain.RecoveredImage]
	for i, o := range objects {
		if o.err != nil {
			skipped[i] = struct{}{}
			slog.Debug("page_images_skipped", "page", pages[i].Number(), "error", o.err)
			continue
		}
		pageNumber := pages[i].Number()
		for _, obj := range o.value {
			if !obj.Supported() {
				if obj.Filter == FilterJPX {
					recovered = append(recovered, outcome[domain.RecoveredImage]{err: imaging.ErrJPXUnavailable})
					continue
				}
				slog.Debug("image_filter_ignored", "page", pageNumber, "image", obj.Name, "filter", obj.Filter)
				continue
			}
			recovered = append(recovered, attempt(func() (domain.RecoveredImage, error) {
				img, err := decodeImageObject(obj)
				if err != nil {
					return domain.RecoveredImage{}, err
				}
				return domain.RecoveredImage{
					Page:   pageNumber,
					Name:   obj.Name,
					Filter: obj.Filter,
					Image:  img,
				}, nil
			}))
		}
	}

	imagesSkipped := 0
	images := collect(recovered, func(_ int, err error) {
		imagesSkipped++
		slog.Debug("image_skipped", "error", err)
	})
	return images, imagesSkipped
}
