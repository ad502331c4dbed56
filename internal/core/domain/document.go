package domain

import (
	"fmt"
	"strings"
)

type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindPNG  DocumentKind = "png"
	KindJPG  DocumentKind = "jpg"
	KindJPEG DocumentKind = "jpeg"
	KindBMP  DocumentKind = "bmp"
	KindTIFF DocumentKind = "tiff"
)

var supportedKinds = map[DocumentKind]struct{}{
	KindPDF:  {},
	KindPNG:  {},
	KindJPG:  {},
	KindJPEG: {},
	KindBMP:  {},
	KindTIFF: {},
}

// SupportedKinds lists accepted kinds in a stable order.
func SupportedKinds() []DocumentKind {
	return []DocumentKind{KindPDF, KindPNG, KindJPG, KindJPEG, KindBMP, KindTIFF}
}

// ParseDocumentKind accepts a bare kind or a filename and returns its kind tag.
func ParseDocumentKind(raw string) (DocumentKind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.LastIndex(value, "."); idx >= 0 {
		value = value[idx+1:]
	}
	kind := DocumentKind(value)
	if !kind.Supported() {
		return "", WrapError(ErrUnsupportedKind, "parse document kind", fmt.Errorf("kind %q", raw))
	}
	return kind, nil
}

func (k DocumentKind) Supported() bool {
	_, ok := supportedKinds[k]
	return ok
}

func (k DocumentKind) IsImage() bool {
	return k.Supported() && k != KindPDF
}

// DocumentBytes is the raw upload with its declared kind.
type DocumentBytes struct {
	Name string
	Kind DocumentKind
	Data []byte
}

type LengthTier string

const (
	LengthShort  LengthTier = "short"
	LengthMedium LengthTier = "medium"
	LengthLong   LengthTier = "long"
)

const DefaultLengthTier = LengthMedium

// ParseLengthTier maps blank input to the default tier. Unknown tiers are
// passed through; the summarizer treats them as medium.
func ParseLengthTier(raw string) LengthTier {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return DefaultLengthTier
	}
	return LengthTier(value)
}
