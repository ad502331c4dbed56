package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

const DefaultOCRFallbackMinChars = 50

// NormalizeWhitespace collapses every whitespace run into one space and trims.
func NormalizeWhitespace(text string) domain.ExtractedText {
	return domain.ExtractedText(strings.Join(strings.Fields(text), " "))
}

// needsOCRFallback reports whether the native PDF text layer is too thin to
// summarize without OCR over the recovered images.
func needsOCRFallback(nativeText string, imageCount, minChars int) bool {
	if imageCount == 0 {
		return false
	}
	return nativeText == "" || utf8.RuneCountInString(nativeText) < minChars
}

// appendOCRText joins non-empty OCR outputs with newlines and appends them to
// the native text.
func appendOCRText(nativeText string, ocrTexts []string) string {
	parts := make([]string, 0, len(ocrTexts))
	for _, t := range ocrTexts {
		if strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(nativeText + "\n" + strings.Join(parts, "\n"))
}
