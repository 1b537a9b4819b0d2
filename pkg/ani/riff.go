// Package ani decodes Windows animated cursor (.ani) files: the RIFF/ACON
// container, the anih animation header, the optional seq/rate chunks, and the
// embedded per-frame icon resources.
package ani

import (
	"encoding/binary"
	"fmt"
)

const (
	riffHeaderSize  = 12 // "RIFF" + size + "ACON"
	chunkHeaderSize = 8  // tag + size

	// The ANI container is one LIST level deep by specification. A second
	// level is tolerated, a third rejected.
	maxChunkDepth = 3
)

// Chunk is a single tagged byte range within the container. Data is a
// sub-slice of the input buffer, not a copy. LIST chunks additionally carry
// their form type and parsed sub-chunks.
type Chunk struct {
	Tag      string
	Data     []byte
	ListType string
	Chunks   []Chunk
}

// ParseRIFF validates the RIFF/ACON signature and walks the chunk sequence,
// recursing into LIST chunks. Chunk payloads are padded to even offsets; the
// pad byte is skipped.
func ParseRIFF(data []byte) ([]Chunk, error) {
	if len(data) < riffHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a RIFF header", ErrMalformedContainer, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return nil, fmt.Errorf("%w: missing RIFF signature", ErrMalformedContainer)
	}
	size := binary.LittleEndian.Uint32(data[4:8])
	if size < 4 || int64(size)+chunkHeaderSize > int64(len(data)) {
		return nil, fmt.Errorf("%w: declared size %d does not fit file size %d", ErrMalformedContainer, size, len(data))
	}
	if string(data[8:12]) != "ACON" {
		return nil, fmt.Errorf("%w: form type %q is not ACON", ErrMalformedContainer, string(data[8:12]))
	}
	return parseChunks(data[riffHeaderSize:chunkHeaderSize+size], 1)
}

func parseChunks(data []byte, depth int) ([]Chunk, error) {
	if depth > maxChunkDepth {
		return nil, fmt.Errorf("%w: LIST nesting exceeds depth %d", ErrMalformedContainer, maxChunkDepth)
	}

	var chunks []Chunk
	for len(data) > 0 {
		if len(data) < chunkHeaderSize {
			return nil, fmt.Errorf("%w: %d trailing bytes cannot hold a chunk header", ErrMalformedContainer, len(data))
		}
		tag := string(data[0:4])
		size := binary.LittleEndian.Uint32(data[4:8])
		if int64(size) > int64(len(data)-chunkHeaderSize) {
			return nil, fmt.Errorf("%w: chunk %q declares %d bytes, %d remain", ErrMalformedContainer, tag, size, len(data)-chunkHeaderSize)
		}

		c := Chunk{Tag: tag, Data: data[chunkHeaderSize : chunkHeaderSize+size]}
		if tag == "LIST" {
			if len(c.Data) < 4 {
				return nil, fmt.Errorf("%w: LIST chunk too short for a form type", ErrMalformedContainer)
			}
			c.ListType = string(c.Data[0:4])
			sub, err := parseChunks(c.Data[4:], depth+1)
			if err != nil {
				return nil, err
			}
			c.Chunks = sub
		}
		chunks = append(chunks, c)

		advance := chunkHeaderSize + int(size)
		if size%2 == 1 {
			advance++ // pad byte
		}
		if advance > len(data) {
			advance = len(data)
		}
		data = data[advance:]
	}
	return chunks, nil
}

// readUint32s interprets a chunk payload as a little-endian uint32 array.
func readUint32s(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return out
}
