package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedKind = errors.New("unsupported document kind")
	ErrDecode          = errors.New("document decode failed")
	ErrExtractionEmpty = errors.New("could not extract text from the document")
	ErrInternal        = errors.New("internal processing error")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
