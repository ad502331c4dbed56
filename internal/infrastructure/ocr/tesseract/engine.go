package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type Config struct {
	Languages   []string
	PageSegMode int
}

func DefaultConfig() Config {
	return Config{
		Languages:   []string{"eng"},
		PageSegMode: int(gosseract.PSM_AUTO),
	}
}

// client is the subset of *gosseract.Client the engine drives.
type client interface {
	SetImageFromBytes(data []byte) error
	SetLanguage(langs ...string) error
	SetPageSegMode(mode gosseract.PageSegMode) error
	Text() (string, error)
	Close() error
}

// Engine runs Tesseract through gosseract, one client per image.
type Engine struct {
	cfg           Config
	clientFactory func() client
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		clientFactory: func() client {
			return gosseract.NewClient()
		},
	}
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", fmt.Errorf("tesseract: nil image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.cfg.Languages) > 0 {
		if err := c.SetLanguage(e.cfg.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
