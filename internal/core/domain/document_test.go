package domain

import (
	"errors"
	"testing"
)

func TestParseDocumentKind(t *testing.T) {
	cases := map[string]DocumentKind{
		"pdf":             KindPDF,
		"report.PDF":      KindPDF,
		"scan.jpeg":       KindJPEG,
		" photo.JPG ":     KindJPG,
		"archive.v2.tiff": KindTIFF,
		"bmp":             KindBMP,
		"screenshot.png":  KindPNG,
	}
	for input, want := range cases {
		got, err := ParseDocumentKind(input)
		if err != nil {
			t.Fatalf("ParseDocumentKind(%q) error = %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseDocumentKind(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseDocumentKindRejectsUnsupported(t *testing.T) {
	for _, input := range []string{"", "notes.txt", "doc.docx", "gif", "noextension"} {
		if _, err := ParseDocumentKind(input); !IsKind(err, ErrUnsupportedKind) {
			t.Fatalf("ParseDocumentKind(%q) error = %v, want unsupported kind", input, err)
		}
	}
}

func TestDocumentKindIsImage(t *testing.T) {
	cases := map[DocumentKind]bool{
		KindPDF:             false,
		KindPNG:             true,
		KindTIFF:            true,
		DocumentKind("gif"): false,
	}
	for kind, want := range cases {
		if got := kind.IsImage(); got != want {
			t.Fatalf("%q.IsImage() = %v, want %v", kind, got, want)
		}
	}
}

func TestParseLengthTier(t *testing.T) {
	cases := map[string]LengthTier{
		"":        LengthMedium,
		" Short ": LengthShort,
		"huge":    LengthTier("huge"),
	}
	for input, want := range cases {
		if got := ParseLengthTier(input); got != want {
			t.Fatalf("ParseLengthTier(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExtractedTextEmpty(t *testing.T) {
	if !ExtractedText("").Empty() || !ExtractedText(" \n\t ").Empty() {
		t.Fatal("blank text must be empty")
	}
	if ExtractedText("x").Empty() {
		t.Fatal("non-blank text must not be empty")
	}
}

func TestWrapErrorKeepsKind(t *testing.T) {
	cause := errors.New("bad header")
	err := WrapError(ErrDecode, "load image", cause)
	if !IsKind(err, ErrDecode) || !errors.Is(err, cause) {
		t.Fatalf("wrapped error lost its kind or cause: %v", err)
	}
	if WrapError(ErrDecode, "noop", nil) != nil {
		t.Fatal("wrapping nil must return nil")
	}
}
