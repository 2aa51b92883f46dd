package imageprep

import (
	"context"
	"image"
	"sort"
)

// denoiseYieldRows is how many rows the median filter processes between
// yields.
const denoiseYieldRows = 10

// denoise applies a 3x3 median filter over the gray channel. It reads
// from a snapshot of the pixel buffer: filtering in place would mix
// already-filtered neighbors into later medians. Border pixels are left
// untouched, and images above the pixel cap are skipped entirely.
func denoise(ctx context.Context, img *image.RGBA) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width*height >= denoiseMaxPixels {
		return nil
	}
	if width < 3 || height < 3 {
		return nil
	}

	src := make([]byte, len(img.Pix))
	copy(src, img.Pix)

	var neighborhood [9]byte
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					neighborhood[n] = src[img.PixOffset(bounds.Min.X+x+dx, bounds.Min.Y+y+dy)]
					n++
				}
			}
			median := median9(neighborhood)
			off := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			img.Pix[off] = median
			img.Pix[off+1] = median
			img.Pix[off+2] = median
		}
		if y%denoiseYieldRows == 0 {
			if err := yield(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func median9(v [9]byte) byte {
	sort.Slice(v[:], func(i, j int) bool { return v[i] < v[j] })
	return v[4]
}
