package ico

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// BITMAPINFOHEADER size; ICO variants store no BITMAPFILEHEADER.
const dibHeaderSize = 40

// decodeDIB decodes a packed bitmap variant. The header's declared height is
// twice the visible height: a 1-bit AND mask of the same dimensions follows
// the color rows. Both are stored bottom-up with 4-byte-aligned rows.
func decodeDIB(data []byte) (*image.RGBA, error) {
	if len(data) < dibHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a bitmap header", ErrTruncatedPixelData, len(data))
	}

	width := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(data[8:12]))) / 2
	bitCount := int(binary.LittleEndian.Uint16(data[14:16]))
	colorUsed := int(binary.LittleEndian.Uint32(data[32:36]))

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bitmap dimensions %dx%d", ErrDecode, width, height)
	}

	switch bitCount {
	case 1, 4, 8, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedBitDepth, bitCount)
	}

	offset := dibHeaderSize
	var palette []byte
	if bitCount <= 8 {
		n := colorUsed
		if n == 0 {
			n = 1 << bitCount
		}
		if len(data) < offset+n*4 {
			return nil, fmt.Errorf("%w: color table needs %d bytes", ErrTruncatedPixelData, n*4)
		}
		palette = data[offset : offset+n*4] // BGRA quads
		offset += n * 4
	}

	// Row sizes are computed in int64: a hostile header can declare
	// dimensions whose byte count wraps an int and slips past the bounds
	// check below.
	rowBytes64 := (int64(width)*int64(bitCount) + 31) / 32 * 4
	maskRowBytes64 := (int64(width) + 31) / 32 * 4
	if rowBytes64+maskRowBytes64 > int64(len(data)) ||
		int64(offset)+(rowBytes64+maskRowBytes64)*int64(height) > int64(len(data)) {
		return nil, fmt.Errorf("%w: %dx%d at %d bpp exceeds the %d-byte variant",
			ErrTruncatedPixelData, width, height, bitCount, len(data))
	}
	rowBytes := int(rowBytes64)
	maskRowBytes := int(maskRowBytes64)
	pixels := data[offset : offset+rowBytes*height]
	mask := data[offset+rowBytes*height:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := pixels[(height-1-y)*rowBytes:] // bottom-up
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, samplePixel(row, x, bitCount, palette))
		}
	}

	// A 32-bit variant with a genuine alpha channel wins over the AND
	// mask. Encoders that never wrote alpha leave the channel all zero, so
	// any nonzero byte marks the channel as real.
	if bitCount == 32 && hasRealAlpha(img) {
		return img, nil
	}
	applyMask(img, mask, maskRowBytes)
	return img, nil
}

// samplePixel reads one pixel from a bottom-up color row. Alpha is carried
// through only at 32 bpp; every other depth gets full opacity and relies on
// the AND mask.
func samplePixel(row []byte, x, bitCount int, palette []byte) color.RGBA {
	switch bitCount {
	case 1:
		idx := (row[x/8] >> (7 - x%8)) & 0x1
		return paletteColor(palette, int(idx))
	case 4:
		b := row[x/2]
		if x%2 == 0 {
			b >>= 4
		}
		return paletteColor(palette, int(b&0xf))
	case 8:
		return paletteColor(palette, int(row[x]))
	case 24:
		o := x * 3
		return color.RGBA{R: row[o+2], G: row[o+1], B: row[o], A: 0xff}
	default: // 32
		o := x * 4
		return color.RGBA{R: row[o+2], G: row[o+1], B: row[o], A: row[o+3]}
	}
}

func paletteColor(palette []byte, idx int) color.RGBA {
	o := idx * 4
	if o+3 >= len(palette) {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: palette[o+2], G: palette[o+1], B: palette[o], A: 0xff}
}

// hasRealAlpha reports whether any pixel carries a nonzero alpha byte.
func hasRealAlpha(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

// applyMask zeroes the alpha of every pixel whose AND-mask bit is set and
// forces full opacity everywhere else. The mask is stored bottom-up, one bit
// per pixel, rows aligned to 4 bytes.
func applyMask(img *image.RGBA, mask []byte, maskRowBytes int) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := mask[(b.Dy()-1-y)*maskRowBytes:]
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(x, y) + 3
			if (row[x/8]>>(7-x%8))&0x1 != 0 {
				img.Pix[i] = 0
			} else {
				img.Pix[i] = 0xff
			}
		}
	}
}
