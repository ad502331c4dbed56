package imaging

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type PixelMode int

const (
	PixelGray PixelMode = iota
	PixelRGB
)

func (m PixelMode) channels() int {
	if m == PixelGray {
		return 1
	}
	return 3
}

func (m PixelMode) String() string {
	if m == PixelGray {
		return "gray"
	}
	return "rgb"
}

// ToRGB returns an opaque RGBA copy of img. Transparent areas are
// flattened onto white.
func ToRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// FromRawPixels rebuilds an image from unfiltered 8-bit samples laid out
// row by row. Trailing bytes beyond width*height samples are ignored.
func FromRawPixels(data []byte, width, height int, mode PixelMode) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raw image size %dx%d", width, height)
	}
	need := width * height * mode.channels()
	if need/height/mode.channels() != width {
		return nil, fmt.Errorf("raw image size %dx%d overflows", width, height)
	}
	if len(data) < need {
		return nil, fmt.Errorf("not enough %s image data: have %d bytes, need %d", mode, len(data), need)
	}

	if mode == PixelGray {
		gray := &image.Gray{
			Pix:    data[:need],
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		}
		return ToRGB(gray), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < need; i, j = i+3, j+4 {
		dst.Pix[j] = data[i]
		dst.Pix[j+1] = data[i+1]
		dst.Pix[j+2] = data[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst, nil
}
