package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
)

type fakeSummarizer struct {
	byName map[string]error
	seen   []domain.DocumentBytes
	tiers  []domain.LengthTier
}

func (f *fakeSummarizer) Summarize(_ context.Context, doc domain.DocumentBytes, tier domain.LengthTier) (*domain.SummaryResult, error) {
	f.seen = append(f.seen, doc)
	f.tiers = append(f.tiers, tier)
	if err := f.byName[doc.Name]; err != nil {
		return nil, err
	}
	return &domain.SummaryResult{
		Summary:    "Summary of " + doc.Name + ". Second point.",
		KeyPoints:  []string{"Summary of " + doc.Name + ".", "Second point."},
		Highlights: []string{"summary"},
	}, nil
}

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseArgs([]string{"-length", "SHORT", "-json", "-quiet", "a.pdf", "b.png"}, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.length != domain.LengthShort || !opts.jsonOut || opts.progress {
		t.Fatalf("unexpected options %+v", opts)
	}
	if !slices.Equal(opts.files, []string{"a.pdf", "b.png"}) {
		t.Fatalf("unexpected files %v", opts.files)
	}

	opts, err = parseArgs([]string{"a.pdf"}, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if opts.length != domain.LengthMedium || !opts.progress {
		t.Fatalf("unexpected default options %+v", opts)
	}
}

func TestParseArgsRejectsBadInput(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseArgs(nil, &stderr); err == nil {
		t.Fatal("expected error without files")
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Fatalf("expected usage text, got %q", stderr.String())
	}
	if _, err := parseArgs([]string{"-length", "huge", "a.pdf"}, &stderr); err == nil {
		t.Fatal("expected error for unknown length")
	}
}

func TestSummarizeFilesJSONLines(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "report.pdf")
	bad := writeTempFile(t, dir, "blank.png")
	unsupported := writeTempFile(t, dir, "notes.txt")

	fake := &fakeSummarizer{byName: map[string]error{
		"blank.png": domain.WrapError(domain.ErrExtractionEmpty, "summarize document", errors.New("no text")),
	}}
	var stdout, stderr bytes.Buffer
	code := summarizeFiles(context.Background(), fake, options{
		length:  domain.LengthLong,
		jsonOut: true,
		files:   []string{good, bad, unsupported},
	}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if len(fake.seen) != 2 || fake.seen[0].Kind != domain.KindPDF || fake.seen[1].Kind != domain.KindPNG {
		t.Fatalf("unexpected documents %+v", fake.seen)
	}
	if !slices.Equal(fake.tiers, []domain.LengthTier{domain.LengthLong, domain.LengthLong}) {
		t.Fatalf("unexpected tiers %v", fake.tiers)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 JSON lines, got %d: %q", len(lines), stdout.String())
	}
	reports := make([]fileReport, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal([]byte(line), &reports[i]); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
	}
	if reports[0].Summary != "Summary of report.pdf. Second point." || reports[0].Error != "" {
		t.Fatalf("unexpected first report %+v", reports[0])
	}
	if len(reports[0].KeyPoints) != 2 {
		t.Fatalf("expected key points in JSON, got %+v", reports[0])
	}
	if !strings.Contains(reports[1].Error, "could not extract text") {
		t.Fatalf("unexpected second error %q", reports[1].Error)
	}
	if reports[2].Error != "Unsupported file type" {
		t.Fatalf("unexpected third error %q", reports[2].Error)
	}
	if !strings.Contains(stderr.String(), "2 of 3 files failed") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestSummarizeFilesHumanOutput(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	path := writeTempFile(t, dir, "scan.jpeg")

	var stdout, stderr bytes.Buffer
	code := summarizeFiles(context.Background(), &fakeSummarizer{}, options{
		length: domain.LengthMedium,
		files:  []string{path},
	}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	out := stdout.String()
	for _, want := range []string{
		"== " + path,
		"Summary of scan.jpeg. Second point.\n",
		"key points:\n  - Summary of scan.jpeg.\n  - Second point.\n",
		"highlights: summary",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReportOmitsEmptyKeyPoints(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	printReport(&out, fileReport{File: "a.png", Summary: "Short."})
	if strings.Contains(out.String(), "key points:") {
		t.Fatalf("unexpected key points header:\n%s", out.String())
	}

	out.Reset()
	printReport(&out, fileReport{File: "b.png", Error: "boom"})
	if !strings.Contains(out.String(), "error: boom") || strings.Contains(out.String(), "  - ") {
		t.Fatalf("unexpected error output:\n%s", out.String())
	}
}

func TestSummarizeFileMissing(t *testing.T) {
	_, err := summarizeFile(context.Background(), &fakeSummarizer{}, filepath.Join(t.TempDir(), "absent.pdf"), domain.LengthShort)
	if err == nil || !strings.Contains(err.Error(), "read file") {
		t.Fatalf("expected read file error, got %v", err)
	}
}
