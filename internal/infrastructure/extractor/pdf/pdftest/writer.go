// Package pdftest writes small PDFs for extractor tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
)

// Image is one image XObject. Data is stored as is, so it must already be
// encoded for Filter.
type Image struct {
	Filter     string
	ColorSpace string
	Width      int
	Height     int
	Data       []byte
}

type Page struct {
	Text   string
	Images []Image
}

// JPEG returns a DCTDecode image filled with one gray level.
func JPEG(width, height int, level uint8) Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	return Image{Filter: "DCTDecode", ColorSpace: "DeviceGray", Width: width, Height: height, Data: buf.Bytes()}
}

// GrayFlate returns a FlateDecode DeviceGray image with 8-bit samples.
func GrayFlate(width, height int, samples []byte) Image {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(samples)
	_ = zw.Close()
	return Image{Filter: "FlateDecode", ColorSpace: "DeviceGray", Width: width, Height: height, Data: buf.Bytes()}
}

// Gradient returns width*height gray samples.
func Gradient(width, height int) []byte {
	out := make([]byte, width*height)
	for i := range out {
		out[i] = uint8(i * 255 / max(len(out)-1, 1))
	}
	return out
}

type writer struct {
	buf     bytes.Buffer
	offsets []int
}

func (w *writer) object(num int, body []byte) {
	for len(w.offsets) < num {
		w.offsets = append(w.offsets, 0)
	}
	w.offsets[num-1] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n", num)
	w.buf.Write(body)
	w.buf.WriteString("\nendobj\n")
}

func stream(dict string, data []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<< %s /Length %d >>\nstream\n", dict, len(data))
	b.Write(data)
	b.WriteString("\nendstream")
	return b.Bytes()
}

// Build writes a PDF with one Helvetica text run and the given images per
// page. Objects 1 to 3 are the catalog, page tree and font; each page then
// takes one object, its content stream and its images in order.
func Build(pages ...Page) []byte {
	w := &writer{}
	w.buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	next := 4
	pageNums := make([]int, len(pages))
	for i, page := range pages {
		pageNums[i] = next
		next += 2 + len(page.Images)
	}

	kids := make([]string, len(pageNums))
	for i, n := range pageNums {
		kids[i] = fmt.Sprintf("%d 0 R", n)
	}
	w.object(1, []byte("<< /Type /Catalog /Pages 2 0 R >>"))
	w.object(2, fmt.Appendf(nil, "<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	w.object(3, []byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"))

	for i, page := range pages {
		pageNum := pageNums[i]
		contentNum := pageNum + 1

		var xobjects, draw strings.Builder
		for j := range page.Images {
			fmt.Fprintf(&xobjects, " /Im%d %d 0 R", j+1, contentNum+1+j)
			fmt.Fprintf(&draw, "q 40 0 0 40 %d 600 cm /Im%d Do Q\n", 72+j*50, j+1)
		}
		resources := "/Font << /F1 3 0 R >>"
		if len(page.Images) > 0 {
			resources += " /XObject <<" + xobjects.String() + " >>"
		}

		w.object(pageNum, fmt.Appendf(nil,
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << %s >> /Contents %d 0 R >>",
			resources, contentNum))

		content := draw.String()
		if page.Text != "" {
			content += fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET\n", escapeText(page.Text))
		}
		w.object(contentNum, stream("", []byte(content)))

		for j, img := range page.Images {
			dict := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent 8 /Filter /%s",
				img.Width, img.Height, img.ColorSpace, img.Filter)
			w.object(contentNum+1+j, stream(dict, img.Data))
		}
	}

	xref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", len(w.offsets)+1)
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(w.offsets)+1, xref)
	return w.buf.Bytes()
}

func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
