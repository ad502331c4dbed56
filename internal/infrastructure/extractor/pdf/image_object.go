package pdf

import (
	"errors"
	"fmt"
	"image"

	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/imaging"
)

const (
	FilterDCT   = "DCTDecode"
	FilterJPX   = "JPXDecode"
	FilterFlate = "FlateDecode"

	colorSpaceGray = "DeviceGray"
)

var errUnsupportedFilter = errors.New("unsupported image filter")

// Swapped in tests.
var (
	jpxAvailable = imaging.JPXAvailable
	decodeJPX    = imaging.DecodeJPX
)

// ImageObject is one image XObject from a page resource dictionary.
type ImageObject struct {
	Name             string
	Filter           string
	ColorSpace       string
	Width            int
	Height           int
	BitsPerComponent int

	// Payload returns the stream bytes: still encoded for DCT and JPX,
	// inflated for Flate.
	Payload func() ([]byte, error)
}

// Supported reports whether the filter can be decoded by this build. JPX
// needs the openjpeg build tag.
func (o ImageObject) Supported() bool {
	switch o.Filter {
	case FilterDCT, FilterFlate:
		return true
	case FilterJPX:
		return jpxAvailable()
	default:
		return false
	}
}

func decodeImageObject(obj ImageObject) (image.Image, error) {
	if !obj.Supported() {
		return nil, fmt.Errorf("%w: %q", errUnsupportedFilter, obj.Filter)
	}
	if obj.Payload == nil {
		return nil, errors.New("image has no payload")
	}
	data, err := obj.Payload()
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", obj.Filter, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty %s stream", obj.Filter)
	}

	switch obj.Filter {
	case FilterFlate:
		if obj.BitsPerComponent != 0 && obj.BitsPerComponent != 8 {
			return nil, fmt.Errorf("unsupported bits per component %d", obj.BitsPerComponent)
		}
		mode := imaging.PixelRGB
		if obj.ColorSpace == colorSpaceGray {
			mode = imaging.PixelGray
		}
		return imaging.FromRawPixels(data, obj.Width, obj.Height, mode)
	case FilterJPX:
		img, err := decodeJPX(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s stream: %w", obj.Filter, err)
		}
		return img, nil
	default:
		img, _, err := imaging.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s stream: %w", obj.Filter, err)
		}
		return imaging.ToRGB(img), nil
	}
}
