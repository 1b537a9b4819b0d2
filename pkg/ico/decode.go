package ico

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// DecodeEntry decodes one size variant into an RGBA raster, dispatching on
// the variant's encoding. PNG variants must report the dimensions the
// directory entry declared.
func DecodeEntry(e *Entry) (*image.RGBA, error) {
	switch e.Encoding {
	case EncodingPNG:
		return decodePNG(e)
	default:
		return decodeDIB(e.Data)
	}
}

func decodePNG(e *Entry) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(e.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() != e.Width || b.Dy() != e.Height {
		return nil, fmt.Errorf("%w: PNG is %dx%d, directory entry declares %dx%d",
			ErrDecode, b.Dx(), b.Dy(), e.Width, e.Height)
	}
	return toRGBA(img), nil
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
