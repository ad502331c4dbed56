package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	textpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// libraryDocument reads the text layer with ledongthuc/pdf and walks image
// XObjects with pdfcpu. Either side may be missing when only one library
// could parse the file.
type libraryDocument struct {
	text      *textpdf.Reader
	resources *model.Context
	pageCount int
}

// OpenDocument parses data with both PDF libraries. It fails only when
// neither can open the file.
func OpenDocument(data []byte) (Document, error) {
	textReader, textErr := openTextLayer(data)
	resources, resErr := openResources(data)
	if textErr != nil && resErr != nil {
		return nil, errors.Join(textErr, resErr)
	}

	doc := &libraryDocument{text: textReader, resources: resources}
	if textReader != nil {
		doc.pageCount = textReader.NumPage()
	}
	if resources != nil && resources.PageCount > doc.pageCount {
		doc.pageCount = resources.PageCount
	}
	return doc, nil
}

func openTextLayer(data []byte) (reader *textpdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("read text layer: recovered panic: %v", r)
		}
	}()
	reader, err = textpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read text layer: %w", err)
	}
	return reader, nil
}

func openResources(data []byte) (ctx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("read resources: recovered panic: %v", r)
		}
	}()
	ctx, err = api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read resources: %w", err)
	}
	return ctx, nil
}

func (d *libraryDocument) Pages() []Page {
	pages := make([]Page, 0, d.pageCount)
	for n := 1; n <= d.pageCount; n++ {
		pages = append(pages, &libraryPage{doc: d, number: n})
	}
	return pages
}

type libraryPage struct {
	doc    *libraryDocument
	number int
}

func (p *libraryPage) Number() int {
	return p.number
}

func (p *libraryPage) Text() (string, error) {
	if p.doc.text == nil || p.number > p.doc.text.NumPage() {
		return "", nil
	}
	page := p.doc.text.Page(p.number)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", p.number, err)
	}
	return text, nil
}

func (p *libraryPage) Images() ([]ImageObject, error) {
	ctx := p.doc.resources
	if ctx == nil || ctx.Optimize == nil || p.number > ctx.PageCount {
		return nil, nil
	}
	objNrs := pdfcpu.ImageObjNrs(ctx, p.number)
	slices.Sort(objNrs)
	return imageObjects(ctx, p.number, objNrs), nil
}

// imageObjects resolves image XObjects by object number. Entries that are
// missing or not image streams are skipped one by one.
func imageObjects(ctx *model.Context, page int, objNrs []int) []ImageObject {
	out := make([]ImageObject, 0, len(objNrs))
	for _, objNr := range objNrs {
		entry, found := ctx.Table[objNr]
		if !found || entry == nil || entry.Free {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			slog.Debug("pdf_image_not_stream", "page", page, "object", objNr)
			continue
		}
		if subtype := sd.NameEntry("Subtype"); subtype == nil || *subtype != "Image" {
			continue
		}
		out = append(out, newImageObject(ctx, objNr, sd))
	}
	return out
}

func newImageObject(ctx *model.Context, objNr int, sd types.StreamDict) ImageObject {
	obj := ImageObject{
		Name:             fmt.Sprintf("obj%d", objNr),
		Filter:           filterName(sd),
		ColorSpace:       colorSpaceName(ctx, sd.Dict),
		Width:            intEntry(ctx, sd.Dict, "Width"),
		Height:           intEntry(ctx, sd.Dict, "Height"),
		BitsPerComponent: intEntry(ctx, sd.Dict, "BitsPerComponent"),
	}
	obj.Payload = func() ([]byte, error) {
		if obj.Filter != FilterFlate {
			return sd.Raw, nil
		}
		stream := sd
		if err := stream.Decode(); err != nil {
			return nil, err
		}
		return stream.Content, nil
	}
	return obj
}

// filterName is empty for unfiltered streams and a joined list for filter
// chains, neither of which is a supported image filter.
func filterName(sd types.StreamDict) string {
	names := make([]string, 0, len(sd.FilterPipeline))
	for _, f := range sd.FilterPipeline {
		names = append(names, f.Name)
	}
	return strings.Join(names, ",")
}

func colorSpaceName(ctx *model.Context, d types.Dict) string {
	o, found := d.Find("ColorSpace")
	if !found {
		return ""
	}
	o, err := ctx.Dereference(o)
	if err != nil {
		return ""
	}
	switch v := o.(type) {
	case types.Name:
		return string(v)
	case types.Array:
		if len(v) > 0 {
			if name, ok := v[0].(types.Name); ok {
				return string(name)
			}
		}
	}
	return ""
}

func intEntry(ctx *model.Context, d types.Dict, key string) int {
	o, found := d.Find(key)
	if !found {
		return 0
	}
	o, err := ctx.Dereference(o)
	if err != nil {
		return 0
	}
	switch v := o.(type) {
	case types.Integer:
		return v.Value()
	case types.Float:
		return int(v.Value())
	default:
		return 0
	}
}
