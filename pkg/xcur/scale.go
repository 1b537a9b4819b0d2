package xcur

import (
	"image"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
)

// Scale resizes a frame by a uniform factor, scaling the hotspot with it.
// A factor of 1 (or an unset, non-positive factor) is a pass-through, not a
// degenerate resize. Integer factors use nearest-neighbor to keep pixel art
// crisp; fractional factors use Lanczos to avoid aliasing on diagonal edges.
func Scale(f Frame, factor float64) Frame {
	if factor <= 0 || factor == 1 {
		return f
	}

	b := f.Img.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))

	filter := resize.Lanczos2
	if factor == math.Trunc(factor) {
		filter = resize.NearestNeighbor
	}
	scaled := toRGBA(resize.Resize(uint(w), uint(h), f.Img, filter))

	return Frame{
		Img:  scaled,
		HotX: clamp(int(math.Round(float64(f.HotX)*factor)), 0, w-1),
		HotY: clamp(int(math.Round(float64(f.HotY)*factor)), 0, h-1),
	}
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

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
