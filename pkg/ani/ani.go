package ani

import "fmt"

// File is a fully parsed animated cursor. Frames holds the raw embedded
// ICO/CUR resource buffers in container order; Seq and Rates are nil when the
// corresponding chunk is absent.
type File struct {
	Header Header
	Seq    []uint32
	Rates  []uint32
	Frames [][]byte
}

// Decode parses a complete .ani file from memory.
func Decode(data []byte) (*File, error) {
	chunks, err := ParseRIFF(data)
	if err != nil {
		return nil, err
	}

	f := &File{}
	haveHeader := false
	for _, c := range chunks {
		switch c.Tag {
		case "anih":
			h, err := parseHeader(c.Data)
			if err != nil {
				return nil, err
			}
			f.Header = h
			haveHeader = true
		case "seq ":
			f.Seq = readUint32s(c.Data)
		case "rate":
			f.Rates = readUint32s(c.Data)
		case "LIST":
			// Only the fram list carries frames; INFO lists and the
			// like are skipped.
			if c.ListType != "fram" {
				continue
			}
			for _, sub := range c.Chunks {
				if sub.Tag == "icon" {
					f.Frames = append(f.Frames, sub.Data)
				}
			}
		}
	}

	if !haveHeader {
		return nil, fmt.Errorf("%w: no anih chunk", ErrMalformedContainer)
	}
	if len(f.Frames) != int(f.Header.Frames) {
		return nil, fmt.Errorf("%w: header declares %d frames, found %d icon chunks",
			ErrMalformedContainer, f.Header.Frames, len(f.Frames))
	}
	return f, nil
}
