// Package ico parses the ICO/CUR resource directories embedded in animated
// cursor frames and decodes their size variants into RGBA rasters. Variants
// come in two encodings: a packed device-independent bitmap with a trailing
// 1-bit transparency mask, or a complete PNG stream.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Resource types from the ICONDIR header.
const (
	typeIcon   = 1
	typeCursor = 2
)

const (
	dirHeaderSize = 6
	dirEntrySize  = 16
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encoding identifies how a size variant's pixel data is stored.
type Encoding int

const (
	EncodingDIB Encoding = iota // packed bitmap + AND mask
	EncodingPNG                 // complete PNG stream
)

// Entry is one size variant of an icon resource. Data is the variant's raw
// encoded bytes, sliced out of the resource buffer.
type Entry struct {
	Width    int
	Height   int
	BitCount int
	HotX     int
	HotY     int
	Encoding Encoding
	Data     []byte
}

// Dir is a parsed ICONDIR with its size variants.
type Dir struct {
	Cursor  bool // resource typed as cursor, hotspots are meaningful
	Entries []Entry
}

// ParseDir parses an ICO/CUR resource buffer. Icon-typed resources carry no
// hotspot; theirs defaults to the image center. ignoreHotspots forces every
// hotspot to the origin instead.
func ParseDir(data []byte, ignoreHotspots bool) (*Dir, error) {
	if len(data) < dirHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for an ICONDIR", ErrMalformedResource, len(data))
	}
	resType := binary.LittleEndian.Uint16(data[2:4])
	count := binary.LittleEndian.Uint16(data[4:6])

	if resType != typeIcon && resType != typeCursor {
		return nil, fmt.Errorf("%w: resource type %d", ErrMalformedResource, resType)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: directory declares zero images", ErrMalformedResource)
	}
	if len(data) < dirHeaderSize+int(count)*dirEntrySize {
		return nil, fmt.Errorf("%w: too short for %d directory entries", ErrMalformedResource, count)
	}

	d := &Dir{Cursor: resType == typeCursor}
	for i := 0; i < int(count); i++ {
		raw := data[dirHeaderSize+i*dirEntrySize:]

		// A width or height byte of 0 means 256.
		width := int(raw[0])
		if width == 0 {
			width = 256
		}
		height := int(raw[1])
		if height == 0 {
			height = 256
		}

		// In CUR entries these two fields are the hotspot; in ICO
		// entries they are planes and bit count.
		fieldA := int(binary.LittleEndian.Uint16(raw[4:6]))
		fieldB := int(binary.LittleEndian.Uint16(raw[6:8]))
		size := binary.LittleEndian.Uint32(raw[8:12])
		offset := binary.LittleEndian.Uint32(raw[12:16])

		if int64(offset)+int64(size) > int64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d spans [%d,%d) beyond %d bytes",
				ErrMalformedResource, i, offset, offset+size, len(data))
		}
		img := data[offset : offset+size]

		e := Entry{Width: width, Height: height, Data: img}
		switch {
		case ignoreHotspots:
			// 0,0 already
		case d.Cursor:
			e.HotX, e.HotY = fieldA, fieldB
		default:
			e.HotX, e.HotY = width/2, height/2
		}

		if bytes.HasPrefix(img, pngSignature) {
			e.Encoding = EncodingPNG
			e.BitCount = 32
		} else {
			if len(img) < 16 {
				return nil, fmt.Errorf("%w: entry %d is too short for a bitmap header", ErrMalformedResource, i)
			}
			if hdr := binary.LittleEndian.Uint32(img[0:4]); hdr != dibHeaderSize {
				return nil, fmt.Errorf("%w: entry %d has bitmap header size %d, want %d",
					ErrMalformedResource, i, hdr, dibHeaderSize)
			}
			e.Encoding = EncodingDIB
			e.BitCount = int(binary.LittleEndian.Uint16(img[14:16]))
		}
		d.Entries = append(d.Entries, e)
	}
	return d, nil
}

// Select picks the size variant to decode: an exact width/height match for
// target when one exists, otherwise the largest available variant so that any
// later resize loses the least detail. A target of 0 always yields the
// largest.
func (d *Dir) Select(target int) (*Entry, error) {
	if len(d.Entries) == 0 {
		return nil, fmt.Errorf("%w: no size variants", ErrMalformedResource)
	}
	if target > 0 {
		for i := range d.Entries {
			e := &d.Entries[i]
			if e.Width == target && e.Height == target {
				return e, nil
			}
		}
	}
	best := &d.Entries[0]
	for i := 1; i < len(d.Entries); i++ {
		e := &d.Entries[i]
		if e.Width*e.Height > best.Width*best.Height {
			best = e
		}
	}
	return best, nil
}
