package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/shagunnguptaa/DocSumm/internal/bootstrap"
	"github.com/shagunnguptaa/DocSumm/internal/config"
	"github.com/shagunnguptaa/DocSumm/internal/core/domain"
	"github.com/shagunnguptaa/DocSumm/internal/core/ports"
	"github.com/shagunnguptaa/DocSumm/internal/observability/logging"
)

const serviceName = "summarize"

var errUnsupportedFile = errors.New("Unsupported file type")

type options struct {
	length   domain.LengthTier
	jsonOut  bool
	progress bool
	files    []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}
	slog.SetDefault(logging.NewJSONLoggerTo(stderr, serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, serviceName)
	if err != nil {
		fmt.Fprintf(stderr, "bootstrap error: %v\n", err)
		return 1
	}
	defer app.Close()

	return summarizeFiles(ctx, app.SummarizeUC, opts, stdout, stderr)
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	length := fs.String("length", string(domain.DefaultLengthTier), "summary length: short, medium or long")
	jsonOut := fs.Bool("json", false, "print one JSON object per file")
	quiet := fs.Bool("quiet", false, "disable the progress bar")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-length short|medium|long] [-json] [-quiet] FILE...\n", serviceName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return options{}, errors.New("no input files")
	}

	tier := domain.ParseLengthTier(*length)
	switch tier {
	case domain.LengthShort, domain.LengthMedium, domain.LengthLong:
	default:
		fmt.Fprintf(stderr, "unknown length %q\n", *length)
		return options{}, fmt.Errorf("unknown length %q", *length)
	}

	return options{
		length:   tier,
		jsonOut:  *jsonOut,
		progress: !*quiet,
		files:    fs.Args(),
	}, nil
}

type fileReport struct {
	File       string   `json:"file"`
	Summary    string   `json:"summary,omitempty"`
	KeyPoints  []string `json:"key_points,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// summarizeFiles processes files in order and returns the exit code: 1 when
// any file failed.
func summarizeFiles(ctx context.Context, summarizer ports.DocumentSummarizer, opts options, stdout, stderr io.Writer) int {
	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = newProgressBar(len(opts.files), stderr)
	}

	failed := 0
	encoder := json.NewEncoder(stdout)
	for _, path := range opts.files {
		if bar != nil {
			bar.Describe(color.BlueString("summarizing %s", filepath.Base(path)))
		}
		result, err := summarizeFile(ctx, summarizer, path, opts.length)
		if bar != nil {
			_ = bar.Add(1)
		}

		report := fileReport{File: path}
		if err != nil {
			failed++
			report.Error = err.Error()
		} else {
			report.Summary = result.Summary
			report.KeyPoints = result.KeyPoints
			report.Highlights = result.Highlights
		}

		if opts.jsonOut {
			_ = encoder.Encode(report)
			continue
		}
		printReport(stdout, report)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(stderr)
	}

	if failed > 0 {
		fmt.Fprintln(stderr, color.RedString("%d of %d files failed", failed, len(opts.files)))
		return 1
	}
	return 0
}

func summarizeFile(ctx context.Context, summarizer ports.DocumentSummarizer, path string, tier domain.LengthTier) (*domain.SummaryResult, error) {
	if !strings.Contains(filepath.Base(path), ".") {
		return nil, errUnsupportedFile
	}
	kind, err := domain.ParseDocumentKind(path)
	if err != nil {
		return nil, errUnsupportedFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return summarizer.Summarize(ctx, domain.DocumentBytes{
		Name: filepath.Base(path),
		Kind: kind,
		Data: data,
	}, tier)
}

func printReport(w io.Writer, report fileReport) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "== %s\n", report.File)
	if report.Error != "" {
		fmt.Fprintln(w, color.RedString("error: %s", report.Error))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, report.Summary)
	if len(report.KeyPoints) > 0 {
		fmt.Fprintln(w, color.GreenString("key points:"))
		for _, point := range report.KeyPoints {
			fmt.Fprintf(w, "  - %s\n", point)
		}
	}
	if len(report.Highlights) > 0 {
		fmt.Fprintf(w, "%s %s\n", color.GreenString("highlights:"), strings.Join(report.Highlights, ", "))
	}
	fmt.Fprintln(w)
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString("summarizing")),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
