package xcur

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.RGBA, hotX, hotY int) Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return Frame{Img: img, HotX: hotX, HotY: hotY}
}

func TestScaleIdentity(t *testing.T) {
	f := solidFrame(32, 32, color.RGBA{R: 0xff, A: 0xff}, 4, 4)

	for _, factor := range []float64{1, 0, -2} {
		got := Scale(f, factor)
		require.Same(t, f.Img, got.Img, "factor %v must be a pass-through", factor)
		require.Equal(t, 4, got.HotX)
		require.Equal(t, 4, got.HotY)
	}
}

func TestScaleDouble(t *testing.T) {
	c := color.RGBA{G: 0xc0, A: 0xff}
	got := Scale(solidFrame(32, 32, c, 4, 4), 2)

	b := got.Img.Bounds()
	require.Equal(t, 64, b.Dx())
	require.Equal(t, 64, b.Dy())
	require.Equal(t, 8, got.HotX)
	require.Equal(t, 8, got.HotY)
	require.Equal(t, 64, got.Size())

	// Nearest-neighbor on a solid raster stays solid.
	require.Equal(t, c, got.Img.RGBAAt(0, 0))
	require.Equal(t, c, got.Img.RGBAAt(63, 63))
}

func TestScaleFractionalBounds(t *testing.T) {
	got := Scale(solidFrame(32, 32, color.RGBA{A: 0xff}, 31, 31), 1.5)

	b := got.Img.Bounds()
	require.Equal(t, 48, b.Dx())
	require.Equal(t, 48, b.Dy())
	// round(31*1.5)=47 lands exactly on the last pixel; the hotspot must
	// never leave the raster.
	require.Equal(t, 47, got.HotX)
	require.Equal(t, 47, got.HotY)
}
