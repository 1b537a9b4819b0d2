package ani

import "fmt"

// TimelineEntry is one displayed step of the animation: which raw frame to
// show and for how many jiffies (1/60 s). Conversion to milliseconds happens
// at emit time to avoid premature rounding.
type TimelineEntry struct {
	Frame   int
	Jiffies uint32
}

// Timeline resolves the display order and per-step durations. With a seq
// chunk the order is the chunk's index array and its length must equal the
// header's step count; without one the order is the identity over all raw
// frames. Durations come from the rate chunk indexed by raw frame, falling
// back to the header's default rate.
func (f *File) Timeline() ([]TimelineEntry, error) {
	frames := int(f.Header.Frames)

	var order []int
	if f.Seq != nil {
		steps := int(f.Header.Steps)
		if len(f.Seq) != steps {
			return nil, fmt.Errorf("%w: sequence has %d entries, header declares %d steps",
				ErrInconsistentTimeline, len(f.Seq), steps)
		}
		order = make([]int, steps)
		for i, idx := range f.Seq {
			if int(idx) >= frames {
				return nil, fmt.Errorf("%w: sequence index %d out of range [0,%d)",
					ErrInconsistentTimeline, idx, frames)
			}
			order[i] = int(idx)
		}
	} else {
		order = make([]int, frames)
		for i := range order {
			order[i] = i
		}
	}

	if f.Rates != nil && len(f.Rates) != frames {
		return nil, fmt.Errorf("%w: rate chunk has %d entries, header declares %d frames",
			ErrInconsistentTimeline, len(f.Rates), frames)
	}

	entries := make([]TimelineEntry, len(order))
	for i, frame := range order {
		jiffies := f.Header.DisplayRate
		if f.Rates != nil {
			jiffies = f.Rates[frame]
		}
		entries[i] = TimelineEntry{Frame: frame, Jiffies: jiffies}
	}
	return entries, nil
}
