// Package decode turns raw uploaded bytes (image or PDF) into a single
// raster image. PDFs are rendered with pdftoppm; only the first page is
// kept, a deliberate scope limitation.
package decode

import (
	"bytes"
	"image"
	"log/slog"

	// Extra raster decoders beyond the stdlib png/jpeg/gif set.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/idocr/idocr/internal/common"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rasterization DPI for PDF pages, default 350
}

type Decoder struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewDecoder(cfg Config, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 350
	}
	return &Decoder{cfg: cfg, runner: execRunner{}, logger: logger}
}

// DecodeImage decodes raw image bytes into a raster image.
func (d *Decoder) DecodeImage(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewDecodeError("decode image", err)
	}
	d.logger.Debug("decode.image.ok", "format", format, "bytes", len(data))
	return img, nil
}
