// Package enhance prepares a decoded document image for OCR: a fixed 3x3
// sharpening convolution followed by grayscale conversion.
package enhance

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/idocr/idocr/internal/common"
)

// sharpenKernel is a Laplacian-sharpen: center weight 9, all others -1.
var sharpenKernel = [3][3]int32{
	{-1, -1, -1},
	{-1, 9, -1},
	{-1, -1, -1},
}

// Enhance sharpens src and converts it to single-channel grayscale.
// Deterministic; the only failure mode is malformed dimensions.
func Enhance(src image.Image) (*image.Gray, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, common.NewDecodeError("image has no pixels", nil)
	}

	rgba := normalize(src)
	sharp := Sharpen(rgba)
	return Grayscale(sharp), nil
}

// normalize converts an arbitrary decoded image to RGBA with origin (0,0).
func normalize(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Sharpen applies the fixed sharpening kernel per channel. Border pixels use
// edge replication so the output keeps the input dimensions.
func Sharpen(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb int32
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, w-1)
					py := clamp(y+ky, 0, h-1)
					o := src.PixOffset(px, py)
					k := sharpenKernel[ky+1][kx+1]
					sr += k * int32(src.Pix[o])
					sg += k * int32(src.Pix[o+1])
					sb += k * int32(src.Pix[o+2])
				}
			}
			o := dst.PixOffset(x, y)
			dst.Pix[o] = clampByte(sr)
			dst.Pix[o+1] = clampByte(sg)
			dst.Pix[o+2] = clampByte(sb)
			dst.Pix[o+3] = src.Pix[src.PixOffset(x, y)+3]
		}
	}
	return dst
}

// Grayscale converts an RGBA image to single-channel gray using the
// standard luminosity weights.
func Grayscale(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
