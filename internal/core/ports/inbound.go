package ports

import (
	"context"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

// DocumentSummarizer is the inbound contract shared by the HTTP, CLI and MCP surfaces.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, doc domain.DocumentBytes, tier domain.LengthTier) (*domain.SummaryResult, error)
}
