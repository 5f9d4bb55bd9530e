package compressor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	minQuality = 1
	maxQuality = 95
)

// Params describes a single compression run.
type Params struct {
	Width        int     // target width in pixels
	Height       int     // target height in pixels
	TargetSizeKB float64 // desired output size, drives the quality estimate
	Quality      int     // base JPEG quality before adjustment (1-100)
	Watermark    string  // optional text drawn in the bottom-right corner
}

// Compressor resizes images and re-encodes them as JPEG at a quality
// estimated from the target size. It holds no per-request state, so a single
// instance is safe for concurrent use.
type Compressor struct {
	fontPath string
}

// New creates a Compressor. fontPath points to the TTF file used for
// watermark text; it may be empty if watermarks are never requested.
func New(fontPath string) *Compressor {
	return &Compressor{fontPath: fontPath}
}

// EstimateQuality adjusts the base JPEG quality proportionally to the ratio
// of target size to original size, clamped to [1, 95]. It is a one-shot
// linear proxy: JPEG output size does not actually scale linearly with the
// quality parameter, so the target size is approximated, never guaranteed.
func EstimateQuality(originalSizeKB, targetSizeKB float64, baseQuality int) int {
	factor := targetSizeKB / originalSizeKB * 100

	quality := int(math.Round(float64(baseQuality) * factor / 100))

	if quality < minQuality {
		quality = minQuality
	}
	if quality > maxQuality {
		quality = maxQuality
	}

	return quality
}

// Compress decodes data, stretches it to exactly Width x Height with Lanczos
// resampling, optionally watermarks it, and encodes it as JPEG at the
// estimated quality. It returns the output bytes and the quality used.
// Both dimensions must be at least 1; the resampler would otherwise fall
// back to aspect-preserving or empty output instead of the requested size.
// There is no re-encode loop: if the single pass misses the target size,
// the result is returned as-is.
func (c *Compressor) Compress(data []byte, p Params) ([]byte, int, error) {
	if p.Width < 1 || p.Height < 1 {
		return nil, 0, fmt.Errorf("invalid target dimensions %dx%d", p.Width, p.Height)
	}

	if len(data) == 0 {
		return nil, 0, fmt.Errorf("empty image data")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	var resized image.Image = imaging.Resize(img, p.Width, p.Height, imaging.Lanczos)

	if p.Watermark != "" {
		watermarked, err := c.watermark(resized, p.Watermark)
		if err != nil {
			return nil, 0, fmt.Errorf("watermark failed: %w", err)
		}
		resized = watermarked
	}

	originalSizeKB := float64(len(data)) / 1024
	quality := EstimateQuality(originalSizeKB, p.TargetSizeKB, p.Quality)

	buf := bytes.NewBuffer(nil)
	if err := imaging.Encode(buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), quality, nil
}

// watermark draws text in the bottom-right corner of img.
func (c *Compressor) watermark(img image.Image, text string) (image.Image, error) {
	dc := gg.NewContextForImage(img)
	dc.SetColor(color.White)

	fontSize := float64(dc.Width()) * 0.05 // 5% of the image width
	if err := dc.LoadFontFace(c.fontPath, fontSize); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	margin := 10.0
	x := float64(dc.Width()) - margin
	y := float64(dc.Height()) - margin

	dc.DrawStringAnchored(text, x, y, 1, 1) // bottom-right corner
	dc.Fill()

	return dc.Image(), nil
}
