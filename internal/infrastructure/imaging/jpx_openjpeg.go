//go:build openjpeg && cgo

package imaging

/*
#cgo pkg-config: libopenjp2
#include <stdlib.h>
#include <string.h>
#include <openjpeg.h>

typedef struct {
	const unsigned char *data;
	OPJ_SIZE_T length;
	OPJ_SIZE_T offset;
} docsumm_jpx_buffer;

static OPJ_SIZE_T docsumm_jpx_read(void *dst, OPJ_SIZE_T n, void *user) {
	docsumm_jpx_buffer *b = (docsumm_jpx_buffer *)user;
	OPJ_SIZE_T left = b->length - b->offset;
	if (left == 0) {
		return (OPJ_SIZE_T)-1;
	}
	if (n > left) {
		n = left;
	}
	memcpy(dst, b->data + b->offset, n);
	b->offset += n;
	return n;
}

static OPJ_OFF_T docsumm_jpx_skip(OPJ_OFF_T n, void *user) {
	docsumm_jpx_buffer *b = (docsumm_jpx_buffer *)user;
	if (n < 0) {
		return -1;
	}
	OPJ_SIZE_T left = b->length - b->offset;
	if ((OPJ_SIZE_T)n > left) {
		n = (OPJ_OFF_T)left;
	}
	b->offset += (OPJ_SIZE_T)n;
	return n;
}

static OPJ_BOOL docsumm_jpx_seek(OPJ_OFF_T n, void *user) {
	docsumm_jpx_buffer *b = (docsumm_jpx_buffer *)user;
	if (n < 0 || (OPJ_SIZE_T)n > b->length) {
		return OPJ_FALSE;
	}
	b->offset = (OPJ_SIZE_T)n;
	return OPJ_TRUE;
}

static opj_stream_t *docsumm_jpx_stream(docsumm_jpx_buffer *b) {
	opj_stream_t *s = opj_stream_create(OPJ_J2K_STREAM_CHUNK_SIZE, OPJ_TRUE);
	if (!s) {
		return NULL;
	}
	opj_stream_set_user_data(s, b, NULL);
	opj_stream_set_user_data_length(s, b->length);
	opj_stream_set_read_function(s, docsumm_jpx_read);
	opj_stream_set_skip_function(s, docsumm_jpx_skip);
	opj_stream_set_seek_function(s, docsumm_jpx_seek);
	return s;
}

static opj_image_comp_t *docsumm_jpx_comp(opj_image_t *img, int i) {
	return &img->comps[i];
}
*/
import "C"

import (
	"errors"
	"fmt"
	"image"
	"unsafe"
)

// maxJPXPixels caps the decoded canvas size.
const maxJPXPixels = 1 << 26

func init() {
	jpxDecoder = decodeOpenJPEG
}

func decodeOpenJPEG(data []byte, codestream bool) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty JPEG 2000 stream")
	}

	cData := C.CBytes(data)
	defer C.free(cData)
	buf := (*C.docsumm_jpx_buffer)(C.malloc(C.size_t(unsafe.Sizeof(C.docsumm_jpx_buffer{}))))
	if buf == nil {
		return nil, errors.New("allocate JPEG 2000 buffer")
	}
	defer C.free(unsafe.Pointer(buf))
	buf.data = (*C.uchar)(cData)
	buf.length = C.OPJ_SIZE_T(len(data))
	buf.offset = 0

	stream := C.docsumm_jpx_stream(buf)
	if stream == nil {
		return nil, errors.New("create JPEG 2000 stream")
	}
	defer C.opj_stream_destroy(stream)

	format := C.OPJ_CODEC_FORMAT(C.OPJ_CODEC_JP2)
	if codestream {
		format = C.OPJ_CODEC_J2K
	}
	codec := C.opj_create_decompress(format)
	if codec == nil {
		return nil, errors.New("create JPEG 2000 codec")
	}
	defer C.opj_destroy_codec(codec)

	var params C.opj_dparameters_t
	C.opj_set_default_decoder_parameters(&params)
	if C.opj_setup_decoder(codec, &params) == 0 {
		return nil, errors.New("jpeg 2000: setup decoder")
	}

	var img *C.opj_image_t
	if C.opj_read_header(stream, codec, &img) == 0 || img == nil {
		return nil, errors.New("jpeg 2000: read header")
	}
	defer C.opj_image_destroy(img)

	if C.opj_decode(codec, stream, img) == 0 || C.opj_end_decompress(codec, stream) == 0 {
		return nil, errors.New("jpeg 2000: decode")
	}
	return convertOpenJPEG(img)
}

func convertOpenJPEG(img *C.opj_image_t) (image.Image, error) {
	width := int(img.x1 - img.x0)
	height := int(img.y1 - img.y0)
	if width <= 0 || height <= 0 || int64(width)*int64(height) > maxJPXPixels {
		return nil, fmt.Errorf("jpeg 2000: unsupported size %dx%d", width, height)
	}

	n := int(img.numcomps)
	comps := make([]jpxComponent, 0, n)
	for i := 0; i < n; i++ {
		c := C.docsumm_jpx_comp(img, C.int(i))
		if int(c.w) != width || int(c.h) != height || c.data == nil {
			return nil, fmt.Errorf("jpeg 2000: component %d is subsampled", i)
		}
		src := unsafe.Slice((*int32)(unsafe.Pointer(c.data)), width*height)
		samples := make([]int32, len(src))
		copy(samples, src)
		comps = append(comps, jpxComponent{
			samples:   samples,
			precision: int(c.prec),
			signed:    c.sgnd != 0,
		})
	}
	return composeJPX(comps, width, height, openJPEGColorSpace(img.color_space))
}

func openJPEGColorSpace(space C.OPJ_COLOR_SPACE) jpxColorSpace {
	switch space {
	case C.OPJ_CLRSPC_GRAY:
		return jpxSpaceGray
	case C.OPJ_CLRSPC_SRGB:
		return jpxSpaceRGB
	case C.OPJ_CLRSPC_SYCC, C.OPJ_CLRSPC_EYCC:
		return jpxSpaceYCC
	case C.OPJ_CLRSPC_CMYK:
		return jpxSpaceCMYK
	default:
		return jpxSpaceUnknown
	}
}
