package pdf

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/infrastructure/extractor/pdf/pdftest"
)

func imageByFilter(t *testing.T, images []domain.RecoveredImage, filter string) domain.RecoveredImage {
	t.Helper()
	for _, img := range images {
		if img.Filter == filter {
			return img
		}
	}
	t.Fatalf("no %s image among %d recovered", filter, len(images))
	return domain.RecoveredImage{}
}

func TestExtractReadsGeneratedPDF(t *testing.T) {
	data := pdftest.Build(pdftest.Page{
		Text: "Tiny.",
		Images: []pdftest.Image{
			pdftest.JPEG(8, 8, 0x40),
			pdftest.GrayFlate(4, 3, pdftest.Gradient(4, 3)),
		},
	})

	content, err := NewExtractor().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(content.Text, "Tiny.") {
		t.Fatalf("expected text layer, got %q", content.Text)
	}
	if content.Pages != 1 || content.PagesSkipped != 0 || content.ImagesSkipped != 0 {
		t.Fatalf("unexpected counters %+v", content)
	}
	if len(content.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(content.Images))
	}

	dct := imageByFilter(t, content.Images, FilterDCT)
	if got := dct.Image.Bounds(); got != image.Rect(0, 0, 8, 8) {
		t.Fatalf("unexpected DCT bounds %v", got)
	}
	if dct.Page != 1 {
		t.Fatalf("unexpected DCT page %d", dct.Page)
	}

	flate := imageByFilter(t, content.Images, FilterFlate)
	if got := flate.Image.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("unexpected Flate bounds %v", got)
	}
	gray, ok := flate.Image.(*image.RGBA)
	if !ok {
		t.Fatalf("Flate image decoded to %T", flate.Image)
	}
	if got := gray.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Fatalf("unexpected first sample %v", got)
	}
	if got := gray.RGBAAt(3, 2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("unexpected last sample %v", got)
	}
}

func TestExtractReadsEveryGeneratedPage(t *testing.T) {
	data := pdftest.Build(
		pdftest.Page{Text: "Alpha page."},
		pdftest.Page{Images: []pdftest.Image{pdftest.JPEG(16, 4, 0x80)}},
		pdftest.Page{Text: "Gamma page."},
	)

	content, err := NewExtractor().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if content.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", content.Pages)
	}
	alpha := strings.Index(content.Text, "Alpha page.")
	gamma := strings.Index(content.Text, "Gamma page.")
	if alpha < 0 || gamma < alpha {
		t.Fatalf("expected both text layers in page order, got %q", content.Text)
	}
	if len(content.Images) != 1 || content.Images[0].Page != 2 {
		t.Fatalf("expected one image on page 2, got %+v", content.Images)
	}
	if got := content.Images[0].Image.Bounds(); got != image.Rect(0, 0, 16, 4) {
		t.Fatalf("unexpected bounds %v", got)
	}
}

func TestImageObjectsSkipsNonStreamEntries(t *testing.T) {
	jpeg := pdftest.JPEG(8, 8, 0x40)
	ctx := &model.Context{XRefTable: &model.XRefTable{Table: map[int]*model.XRefTableEntry{
		5: {Object: types.Dict{"Subtype": types.Name("Image")}},
		6: {Object: types.StreamDict{
			Dict: types.Dict{
				"Subtype":    types.Name("Image"),
				"Width":      types.Integer(8),
				"Height":     types.Integer(8),
				"ColorSpace": types.Name("DeviceGray"),
			},
			Raw:            jpeg.Data,
			FilterPipeline: []types.PDFFilter{{Name: FilterDCT}},
		}},
		7: {Free: true},
		8: {Object: types.StreamDict{Dict: types.Dict{"Subtype": types.Name("Form")}}},
	}}}

	objects := imageObjects(ctx, 1, []int{4, 5, 6, 7, 8})
	if len(objects) != 1 {
		t.Fatalf("expected only the image stream, got %+v", objects)
	}
	obj := objects[0]
	if obj.Name != "obj6" || obj.Filter != FilterDCT || obj.Width != 8 || obj.ColorSpace != "DeviceGray" {
		t.Fatalf("unexpected image object %+v", obj)
	}
	img, err := decodeImageObject(obj)
	if err != nil {
		t.Fatalf("decodeImageObject() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 8) {
		t.Fatalf("unexpected bounds %v", got)
	}
}
