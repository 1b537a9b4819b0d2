package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixWriterPrefixesCompleteLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, "> one\n> two\n", out.String())
}

func TestPrefixWriterBuffersPartialLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	_, err := pw.Write([]byte("par"))
	require.NoError(t, err)
	require.Empty(t, out.String(), "no newline yet, nothing flushed")

	_, err = pw.Write([]byte("tial\n"))
	require.NoError(t, err)
	require.Equal(t, "> partial\n", out.String())
}
