package logging

import (
	"bytes"
	"io"
)

// PrefixWriter decorates an io.Writer, prepending a prefix to every complete
// line. Partial lines are buffered until their newline arrives so a prefix
// never lands mid-line.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), writer: w}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.pending.Write(p)

	for {
		raw := pw.pending.Bytes()
		nl := bytes.IndexByte(raw, '\n')
		if nl < 0 {
			break
		}
		line := make([]byte, 0, len(pw.prefix)+nl+1)
		line = append(line, pw.prefix...)
		line = append(line, raw[:nl+1]...)
		if _, err := pw.writer.Write(line); err != nil {
			return 0, err
		}
		pw.pending.Next(nl + 1)
	}
	return len(p), nil
}
