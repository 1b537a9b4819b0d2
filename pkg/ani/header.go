package ani

import (
	"encoding/binary"
	"fmt"
)

// anih chunk payload: nine little-endian uint32 fields.
const headerSize = 36

// ANIHEADER flag bits.
const (
	flagIcon     = 0x1 // frames are embedded ICO/CUR resources
	flagSequence = 0x2 // a seq chunk defines display order
)

// Header is the decoded anih chunk.
type Header struct {
	Frames      uint32 // raw frames stored in the file
	Steps       uint32 // displayed steps in one animation loop
	Width       uint32
	Height      uint32
	BitCount    uint32
	Planes      uint32
	DisplayRate uint32 // default per-frame rate, in jiffies (1/60 s)
	Flags       uint32
}

// HasSequence reports whether the AF_SEQUENCE flag is set.
func (h Header) HasSequence() bool { return h.Flags&flagSequence != 0 }

// parseHeader decodes and validates the 36-byte anih payload. The header's
// self-reported size field must itself be 36, and the AF_ICON flag must be
// set: raw-bitmap animations without icon resources are not supported.
func parseHeader(payload []byte) (Header, error) {
	if len(payload) != headerSize {
		return Header{}, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidHeader, len(payload), headerSize)
	}
	if size := binary.LittleEndian.Uint32(payload[0:4]); size != headerSize {
		return Header{}, fmt.Errorf("%w: self-reported size %d, want %d", ErrInvalidHeader, size, headerSize)
	}

	h := Header{
		Frames:      binary.LittleEndian.Uint32(payload[4:8]),
		Steps:       binary.LittleEndian.Uint32(payload[8:12]),
		Width:       binary.LittleEndian.Uint32(payload[12:16]),
		Height:      binary.LittleEndian.Uint32(payload[16:20]),
		BitCount:    binary.LittleEndian.Uint32(payload[20:24]),
		Planes:      binary.LittleEndian.Uint32(payload[24:28]),
		DisplayRate: binary.LittleEndian.Uint32(payload[28:32]),
		Flags:       binary.LittleEndian.Uint32(payload[32:36]),
	}

	if h.Frames == 0 {
		return Header{}, fmt.Errorf("%w: zero frames", ErrInvalidHeader)
	}
	if h.Flags&flagIcon == 0 {
		return Header{}, fmt.Errorf("%w: AF_ICON flag not set", ErrUnsupportedFormat)
	}
	return h, nil
}
