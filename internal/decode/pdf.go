package decode

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/idocr/idocr/internal/common"
)

// DecodePDF renders the first page of a PDF at the configured DPI and
// decodes it. Pages after the first are never rendered.
func (d *Decoder) DecodePDF(ctx context.Context, data []byte) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "idocr-pdf-*")
	if err != nil {
		return nil, common.NewDecodeError("create temp dir", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			d.logger.Warn("decode.pdf.cleanup_failed", "dir", tmpDir, "error", err)
		}
	}()

	src := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, common.NewDecodeError("write temp pdf", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -f 1 -l 1 -png <in.pdf> <tmp/page>
	_, errb, err := d.runner.Run(ctx, d.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", d.cfg.DPI), "-f", "1", "-l", "1", "-png", src, prefix)
	if err != nil {
		return nil, common.NewDecodeError("render pdf: "+truncate(string(errb), 512), err)
	}

	// pdftoppm names output page-1.png or page-01.png depending on page count
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, common.NewDecodeError("pdf produced no page", nil)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		return nil, common.NewDecodeError("open rendered page", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, common.NewDecodeError("decode rendered page", err)
	}
	d.logger.Debug("decode.pdf.ok", "dpi", d.cfg.DPI, "pages_rendered", len(matches))
	return img, nil
}
