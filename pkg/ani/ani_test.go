package ani

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// anih builds a header payload. The size field is normally the correct 36.
func anih(size, frames, steps, rate, flags uint32) []byte {
	return uint32Payload(size, frames, steps, 0, 0, 0, 0, rate, flags)
}

// frameList builds a fram LIST with n dummy icon chunks. Decode never looks
// inside icon payloads.
func frameList(n int) []byte {
	chunks := make([][]byte, n)
	for i := range chunks {
		chunks[i] = chunk("icon", []byte{byte(i), 0xee})
	}
	return list("fram", chunks...)
}

func TestDecodeMinimal(t *testing.T) {
	data := riffACON(
		chunk("anih", anih(36, 2, 2, 10, flagIcon)),
		frameList(2),
	)

	f, err := Decode(data)
	require.NoError(t, err)
	require.EqualValues(t, 2, f.Header.Frames)
	require.EqualValues(t, 10, f.Header.DisplayRate)
	require.Len(t, f.Frames, 2)
	require.Equal(t, []byte{1, 0xee}, f.Frames[1])
	require.Nil(t, f.Seq)
	require.Nil(t, f.Rates)
}

func TestDecodeHeaderValidation(t *testing.T) {
	testCases := []struct {
		name    string
		payload []byte
		want    error
	}{
		{"self-reported size 40", anih(40, 1, 1, 10, flagIcon), ErrInvalidHeader},
		{"truncated payload", anih(36, 1, 1, 10, flagIcon)[:32], ErrInvalidHeader},
		{"zero frames", anih(36, 0, 0, 10, flagIcon), ErrInvalidHeader},
		{"icon flag clear", anih(36, 1, 1, 10, 0), ErrUnsupportedFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(riffACON(chunk("anih", tc.payload), frameList(1)))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	_, err := Decode(riffACON(frameList(1)))
	require.ErrorIs(t, err, ErrMalformedContainer)
}

func TestDecodeFrameCountMismatch(t *testing.T) {
	data := riffACON(
		chunk("anih", anih(36, 3, 3, 10, flagIcon)),
		frameList(2),
	)
	_, err := Decode(data)
	require.ErrorIs(t, err, ErrMalformedContainer)
}

func TestDecodeIgnoresInfoList(t *testing.T) {
	data := riffACON(
		list("INFO", chunk("INAM", []byte("test cursor\x00"))),
		chunk("anih", anih(36, 1, 1, 10, flagIcon)),
		frameList(1),
	)
	f, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, f.Frames, 1)
}

func TestTimelineIdentityOrder(t *testing.T) {
	data := riffACON(
		chunk("anih", anih(36, 3, 3, 8, flagIcon)),
		frameList(3),
	)
	f, err := Decode(data)
	require.NoError(t, err)

	entries, err := f.Timeline()
	require.NoError(t, err)
	require.Equal(t, []TimelineEntry{
		{Frame: 0, Jiffies: 8},
		{Frame: 1, Jiffies: 8},
		{Frame: 2, Jiffies: 8},
	}, entries)
}

func TestTimelineSequenceAndRates(t *testing.T) {
	// 3 raw frames displayed as 5 steps; rates are indexed by raw frame.
	data := riffACON(
		chunk("anih", anih(36, 3, 5, 10, flagIcon|flagSequence)),
		chunk("seq ", uint32Payload(0, 1, 2, 1, 0)),
		chunk("rate", uint32Payload(6, 6, 6)),
		frameList(3),
	)
	f, err := Decode(data)
	require.NoError(t, err)

	entries, err := f.Timeline()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Equal(t, []int{0, 1, 2, 1, 0}, frameOrder(entries))
	for _, e := range entries {
		require.EqualValues(t, 6, e.Jiffies)
	}
}

func TestTimelineInconsistencies(t *testing.T) {
	testCases := []struct {
		name   string
		chunks [][]byte
	}{
		{
			"sequence length does not match steps",
			[][]byte{
				chunk("anih", anih(36, 3, 5, 10, flagIcon|flagSequence)),
				chunk("seq ", uint32Payload(0, 1, 2)),
				frameList(3),
			},
		},
		{
			"sequence index out of range",
			[][]byte{
				chunk("anih", anih(36, 3, 5, 10, flagIcon|flagSequence)),
				chunk("seq ", uint32Payload(0, 1, 2, 1, 3)),
				frameList(3),
			},
		},
		{
			"rate length does not match frames",
			[][]byte{
				chunk("anih", anih(36, 3, 3, 10, flagIcon)),
				chunk("rate", uint32Payload(6, 6)),
				frameList(3),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Decode(riffACON(tc.chunks...))
			require.NoError(t, err)
			_, err = f.Timeline()
			require.ErrorIs(t, err, ErrInconsistentTimeline)
		})
	}
}

func frameOrder(entries []TimelineEntry) []int {
	order := make([]int, len(entries))
	for i, e := range entries {
		order[i] = e.Frame
	}
	return order
}
