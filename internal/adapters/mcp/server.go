package mcpadapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
)

const (
	serverName       = "docsumm"
	summarizeToolKey = "summarize_document"
)

// NewServer exposes the summarization pipeline as a single MCP tool.
func NewServer(version string, summarizer ports.DocumentSummarizer) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(summarizeTool(), SummarizeHandler(summarizer))
	return s
}

func summarizeTool() mcp.Tool {
	kinds := make([]string, 0, len(domain.SupportedKinds()))
	for _, kind := range domain.SupportedKinds() {
		kinds = append(kinds, string(kind))
	}
	return mcp.NewTool(summarizeToolKey,
		mcp.WithDescription("Extract text from a PDF or image and return an extractive summary, key points and highlight words."),
		mcp.WithString("content_base64",
			mcp.Required(),
			mcp.Description("Document bytes, base64 encoded."),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Enum(kinds...),
			mcp.Description("Document kind, the file extension without the dot."),
		),
		mcp.WithString("length",
			mcp.Enum(string(domain.LengthShort), string(domain.LengthMedium), string(domain.LengthLong)),
			mcp.DefaultString(string(domain.DefaultLengthTier)),
			mcp.Description("Summary length tier."),
		),
		mcp.WithString("name",
			mcp.Description("Optional document name used in logs."),
		),
	)
}

// SummarizeHandler decodes the tool arguments and runs one pipeline pass.
// Pipeline failures are reported as tool errors, not protocol errors.
func SummarizeHandler(summarizer ports.DocumentSummarizer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		encoded, err := request.RequireString("content_base64")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rawKind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kind, err := domain.ParseDocumentKind(rawKind)
		if err != nil {
			return mcp.NewToolResultError("Unsupported file type"), nil
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("content_base64 is not valid base64: %v", err)), nil
		}

		doc := domain.DocumentBytes{
			Name: request.GetString("name", "document."+string(kind)),
			Kind: kind,
			Data: data,
		}
		tier := domain.ParseLengthTier(request.GetString("length", string(domain.DefaultLengthTier)))

		result, err := summarizer.Summarize(ctx, doc, tier)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			slog.Warn("mcp_summarize_failed", "document", doc.Name, "error", err)
			return mcp.NewToolResultError(toolErrorMessage(err)), nil
		}

		text, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal summary: %w", err)
		}
		return mcp.NewToolResultStructured(result, string(text)), nil
	}
}

func toolErrorMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrExtractionEmpty):
		return "Could not extract text from the document."
	case domain.IsKind(err, domain.ErrUnsupportedKind):
		return "Unsupported file type"
	case domain.IsKind(err, domain.ErrInvalidInput):
		return err.Error()
	default:
		return "Processing failed: " + err.Error()
	}
}
