package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// JP2 file format signature box.
	jp2Signature = []byte("\x00\x00\x00\x0cjP  \r\n\x87\n")
	// Raw codestream: SOC marker followed by SIZ.
	j2kSignature = []byte{0xff, 0x4f, 0xff, 0x51}
)

var ErrJPXUnavailable = errors.New("JPEG 2000 decoding not built in (build with -tags openjpeg)")

// jpxDecoder is installed by builds that link libopenjp2.
var jpxDecoder func(data []byte, codestream bool) (image.Image, error)

func JPXAvailable() bool {
	return jpxDecoder != nil
}

func IsJPX(data []byte) bool {
	return bytes.HasPrefix(data, jp2Signature) || bytes.HasPrefix(data, j2kSignature)
}

// DecodeJPX decodes a JPXDecode stream, either a JP2 file or a bare
// codestream, into an opaque RGB image.
func DecodeJPX(data []byte) (*image.RGBA, error) {
	if !IsJPX(data) {
		return nil, errors.New("not a JPEG 2000 stream")
	}
	if jpxDecoder == nil {
		return nil, ErrJPXUnavailable
	}
	img, err := jpxDecoder(data, bytes.HasPrefix(data, j2kSignature))
	if err != nil {
		return nil, err
	}
	return ToRGB(img), nil
}

type jpxColorSpace int

const (
	jpxSpaceUnknown jpxColorSpace = iota
	jpxSpaceGray
	jpxSpaceRGB
	jpxSpaceYCC
	jpxSpaceCMYK
)

// jpxComponent holds one decoded plane at full resolution.
type jpxComponent struct {
	samples   []int32
	precision int
	signed    bool
}

func (c jpxComponent) at(i int) uint8 {
	return scaleSample(c.samples[i], c.precision, c.signed)
}

// scaleSample maps a sample of the given bit depth onto 0..255.
func scaleSample(value int32, precision int, signed bool) uint8 {
	if precision <= 0 {
		return 0
	}
	precision = min(precision, 31)
	v := int64(value)
	if signed {
		v += int64(1) << (precision - 1)
	}
	limit := int64(1)<<precision - 1
	v = max(0, min(v, limit))
	return uint8((v*255 + limit/2) / limit)
}

// composeJPX interleaves decoded planes into an NRGBA image.
func composeJPX(comps []jpxComponent, width, height int, space jpxColorSpace) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid JPEG 2000 size %dx%d", width, height)
	}
	pixels := width * height
	for i, c := range comps {
		if len(c.samples) != pixels {
			return nil, fmt.Errorf("component %d has %d samples, want %d", i, len(c.samples), pixels)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < pixels; i++ {
		var px color.NRGBA
		switch len(comps) {
		case 1:
			g := comps[0].at(i)
			px = color.NRGBA{R: g, G: g, B: g, A: 0xff}
		case 2:
			g := comps[0].at(i)
			px = color.NRGBA{R: g, G: g, B: g, A: comps[1].at(i)}
		case 3, 4:
			a, b, c := comps[0].at(i), comps[1].at(i), comps[2].at(i)
			px = color.NRGBA{R: a, G: b, B: c, A: 0xff}
			switch {
			case space == jpxSpaceYCC:
				px.R, px.G, px.B = color.YCbCrToRGB(a, b, c)
			case space == jpxSpaceCMYK && len(comps) == 4:
				px.R, px.G, px.B = color.CMYKToRGB(a, b, c, comps[3].at(i))
			case len(comps) == 4:
				px.A = comps[3].at(i)
			}
		default:
			return nil, fmt.Errorf("unsupported JPEG 2000 component count %d", len(comps))
		}
		dst.SetNRGBA(i%width, i/width, px)
	}
	return dst, nil
}
