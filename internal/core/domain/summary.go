package domain

import "strings"

// ExtractedText is the whitespace-normalized text of one document.
type ExtractedText string

func (t ExtractedText) Empty() bool {
	return strings.TrimSpace(string(t)) == ""
}

func (t ExtractedText) String() string {
	return string(t)
}

type SummaryResult struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	Highlights []string `json:"highlights"`
}

// EmptySummary is returned for text without sentences.
func EmptySummary() SummaryResult {
	return SummaryResult{
		Summary:    "",
		KeyPoints:  []string{},
		Highlights: []string{},
	}
}

// PDFContent is what the PDF extractor recovers from one document.
type PDFContent struct {
	Text          string
	Images        []RecoveredImage
	Pages         int
	PagesSkipped  int
	ImagesSkipped int
}

// PipelineStats describes one pipeline run for logs and metrics.
type PipelineStats struct {
	Kind            DocumentKind
	Pages           int
	PagesSkipped    int
	ImagesRecovered int
	// ImagesByFilter counts recovered images per PDF stream filter.
	ImagesByFilter map[string]int
	OCRAttempted   int
	OCRFailed      int
	FallbackUsed   bool
	KeyPoints      int
}
