// Package ocr recognizes text regions on a raster image and aggregates them
// into an ordered token sequence for the LLM stage.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Observation is one recognized text region. Polygon and Confidence are
// dropped by aggregation; ordering follows the engine's reading-order
// heuristic and must be preserved downstream.
type Observation struct {
	Polygon    []image.Point
	Text       string
	Confidence float64
}

// Engine recognizes text on a single image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Observation, error)
}

type Config struct {
	Language    string // default "eng"
	TessdataDir string
}

// TesseractEngine implements Engine on top of gosseract. A fresh tesseract
// client is created per call; nothing is shared across requests.
type TesseractEngine struct {
	cfg           Config
	logger        *slog.Logger
	clientFactory func() *gosseract.Client
}

func NewTesseractEngine(cfg Config, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractEngine{cfg: cfg, logger: logger, clientFactory: gosseract.NewClient}
}

// Recognize runs tesseract over img and returns line-level observations in
// reading order. An empty slice with a nil error means "no text found".
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image for ocr: %w", err)
	}

	c := e.clientFactory()
	defer func() {
		if err := c.Close(); err != nil {
			e.logger.Warn("ocr.client.close_failed", "error", err)
		}
	}()

	if e.cfg.TessdataDir != "" {
		if err := c.SetTessdataPrefix(e.cfg.TessdataDir); err != nil {
			return nil, fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	if err := c.SetLanguage(e.cfg.Language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w", err)
	}

	obs := make([]Observation, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		obs = append(obs, Observation{
			Polygon: []image.Point{
				b.Box.Min,
				{X: b.Box.Max.X, Y: b.Box.Min.Y},
				b.Box.Max,
				{X: b.Box.Min.X, Y: b.Box.Max.Y},
			},
			Text:       text,
			Confidence: b.Confidence / 100.0,
		})
	}
	e.logger.Debug("ocr.recognize.ok", "lines", len(obs), "lang", e.cfg.Language)
	return obs, nil
}
