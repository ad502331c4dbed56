package httpadapter

import (
	"net/http"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

const extractionEmptyMessage = "Could not extract text from the document."

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnsupportedKind):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrExtractionEmpty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedKind):
		return "Unsupported file type"
	case domain.IsKind(err, domain.ErrInvalidInput):
		return err.Error()
	case domain.IsKind(err, domain.ErrExtractionEmpty):
		return extractionEmptyMessage
	default:
		return "Processing failed: " + err.Error()
	}
}
