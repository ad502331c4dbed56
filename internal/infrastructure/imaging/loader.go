package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

// Loader decodes raster uploads into RGB images.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(data []byte, kind domain.DocumentKind) (image.Image, error) {
	if !kind.IsImage() {
		return nil, domain.WrapError(domain.ErrUnsupportedKind, "load image", fmt.Errorf("kind %q is not an image", kind))
	}
	if len(data) == 0 {
		return nil, domain.WrapError(domain.ErrDecode, "load image", fmt.Errorf("empty %s payload", kind))
	}

	img, format, err := Decode(data)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDecode, "load image", fmt.Errorf("decode %s: %w", kind, err))
	}
	if format != formatFamily(kind) {
		slog.Debug("image_format_mismatch", "claimed_kind", string(kind), "detected_format", format)
	}
	return ToRGB(img), nil
}

// Decode sniffs the format and decodes data with any registered decoder.
func Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

func formatFamily(kind domain.DocumentKind) string {
	switch kind {
	case domain.KindJPG, domain.KindJPEG:
		return "jpeg"
	default:
		return string(kind)
	}
}
