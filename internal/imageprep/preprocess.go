// Package imageprep converts raw page rasters into binarized,
// contrast-enhanced images that OCR engines handle well. Pixel transforms
// run in bounded batches with a cooperative yield between batches so a
// large page never monopolizes the scheduler.
package imageprep

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"math"
	"os"
	"runtime"

	_ "image/gif"
	_ "image/jpeg"
)

// Options selects which pipeline stages run. Stages always apply in the
// order grayscale, contrast, binarize, denoise.
type Options struct {
	Grayscale       bool
	EnhanceContrast bool
	Binarize        bool
	Denoise         bool
}

// DefaultOptions enables everything except denoising, which is opt-in.
func DefaultOptions() Options {
	return Options{Grayscale: true, EnhanceContrast: true, Binarize: true}
}

const (
	// batchBytes is the number of RGBA bytes processed between yields,
	// roughly 10,000 pixels.
	batchBytes = 40000

	// contrastSampleStride samples every 10th pixel when probing the
	// gray range.
	contrastSampleStride = 40

	// minContrastRange below which the stretch is skipped so near-uniform
	// noise is not amplified.
	minContrastRange = 10

	// denoiseMaxPixels caps the median filter to images it can afford.
	denoiseMaxPixels = 2_000_000
)

// Process runs the enabled stages over a copy of src and returns the
// result. The source image is never modified.
func Process(ctx context.Context, src image.Image, opts Options) (*image.RGBA, error) {
	img := toRGBA(src)

	if opts.Grayscale {
		if err := grayscale(ctx, img.Pix); err != nil {
			return nil, err
		}
	}
	if opts.EnhanceContrast {
		if err := enhanceContrast(ctx, img.Pix); err != nil {
			return nil, err
		}
	}
	if opts.Binarize {
		if err := binarize(ctx, img.Pix); err != nil {
			return nil, err
		}
	}
	if opts.Denoise {
		if err := denoise(ctx, img); err != nil {
			return nil, err
		}
	}

	return img, nil
}

// ProcessFile reads and decodes an image file, runs the pipeline, and
// returns PNG bytes. A file that cannot be read or decoded is a hard
// error: there is nothing to hand to OCR. A failure while producing the
// processed output degrades to the original bytes instead, since OCR on
// an unprocessed page beats no OCR at all.
func ProcessFile(ctx context.Context, path string, opts Options) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	processed, err := Process(ctx, src, opts)
	if err != nil {
		slog.Warn("Image preprocessing failed, using original", "path", path, "error", err)
		return raw, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		slog.Warn("Failed to encode processed image, using original", "path", path, "error", err)
		return raw, nil
	}

	return buf.Bytes(), nil
}

// grayscale writes the luma of each pixel into its three color channels.
// Alpha is untouched.
func grayscale(ctx context.Context, pix []byte) error {
	for start := 0; start < len(pix); start += batchBytes {
		end := start + batchBytes
		if end > len(pix) {
			end = len(pix)
		}
		for i := start; i+3 < end; i += 4 {
			gray := lumaByte(pix[i], pix[i+1], pix[i+2])
			pix[i] = gray
			pix[i+1] = gray
			pix[i+2] = gray
		}
		if err := yield(ctx); err != nil {
			return err
		}
	}
	return nil
}

// enhanceContrast linearly stretches the gray range to [0,255]. The range
// is probed on a sparse sample; a sampled range at or below
// minContrastRange leaves the image unchanged.
func enhanceContrast(ctx context.Context, pix []byte) error {
	minGray, maxGray := byte(255), byte(0)
	for i := 0; i+3 < len(pix); i += contrastSampleStride {
		g := pix[i]
		if g < minGray {
			minGray = g
		}
		if g > maxGray {
			maxGray = g
		}
	}

	if int(maxGray)-int(minGray) <= minContrastRange {
		return nil
	}

	span := float64(maxGray) - float64(minGray)
	for start := 0; start < len(pix); start += batchBytes {
		end := start + batchBytes
		if end > len(pix) {
			end = len(pix)
		}
		for i := start; i+3 < end; i += 4 {
			stretched := math.Round(float64(int(pix[i])-int(minGray)) / span * 255)
			v := clampByte(stretched)
			pix[i] = v
			pix[i+1] = v
			pix[i+2] = v
		}
		if err := yield(ctx); err != nil {
			return err
		}
	}
	return nil
}

// binarize maps every pixel to black or white around an Otsu threshold.
func binarize(ctx context.Context, pix []byte) error {
	threshold := otsuThreshold(pix)

	for start := 0; start < len(pix); start += batchBytes {
		end := start + batchBytes
		if end > len(pix) {
			end = len(pix)
		}
		for i := start; i+3 < end; i += 4 {
			v := byte(0)
			if pix[i] > threshold {
				v = 255
			}
			pix[i] = v
			pix[i+1] = v
			pix[i+2] = v
		}
		if err := yield(ctx); err != nil {
			return err
		}
	}
	return nil
}

func lumaByte(r, g, b byte) byte {
	return byte(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// yield hands the scheduler a chance to run other goroutines between
// batches and honors cancellation.
func yield(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}

func toRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return rgba
}
