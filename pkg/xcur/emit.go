package xcur

import (
	"fmt"
	"image/png"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eltaters/win2xcursor/pkg/ani"
)

// Emit writes the frames referenced by the timeline as PNG files under
// framesDir and the .cursor directory file at cursorPath. Frames referenced
// by several timeline entries are written once and referenced by name. Files
// are created exclusively: a name collision within a run is an error, never a
// silent overwrite.
//
// Image paths inside the .cursor file are relative
// (<basename of framesDir>/<file>.png), matching xcursorgen runs rooted at
// the theme directory.
func Emit(name string, frames []Frame, timeline []ani.TimelineEntry, framesDir, cursorPath string) error {
	if len(timeline) == 0 {
		return fmt.Errorf("cursor %q: empty timeline", name)
	}

	written := make(map[int]string, len(frames))
	for _, entry := range timeline {
		if entry.Frame < 0 || entry.Frame >= len(frames) {
			return fmt.Errorf("cursor %q: timeline references frame %d of %d", name, entry.Frame, len(frames))
		}
		if _, ok := written[entry.Frame]; ok {
			continue
		}
		fname := fmt.Sprintf("%s_%02d.png", name, entry.Frame+1)
		if err := writePNG(filepath.Join(framesDir, fname), frames[entry.Frame]); err != nil {
			return err
		}
		written[entry.Frame] = fname
	}

	// A bare line means a static cursor to xcursorgen; a duration-bearing
	// line means one step of an animation. Only multi-step timelines get
	// durations.
	animated := len(timeline) > 1

	var buf strings.Builder
	for _, entry := range timeline {
		f := frames[entry.Frame]
		rel := path.Join(filepath.Base(framesDir), written[entry.Frame])
		if animated {
			ms, err := durationMs(entry.Jiffies)
			if err != nil {
				return fmt.Errorf("cursor %q, frame %d: %w", name, entry.Frame, err)
			}
			fmt.Fprintf(&buf, "%d %d %d %s %d\n", f.Size(), f.HotX, f.HotY, rel, ms)
		} else {
			fmt.Fprintf(&buf, "%d %d %d %s\n", f.Size(), f.HotX, f.HotY, rel)
		}
	}

	out, err := os.OpenFile(cursorPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating cursor file: %w", err)
	}
	if _, err := out.WriteString(buf.String()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writePNG(path string, f Frame) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating frame image: %w", err)
	}
	if err := png.Encode(out, f.Img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// durationMs converts jiffies (1/60 s) to whole milliseconds with a floor of
// one. A zero duration is a pipeline bug: xcursorgen reads a 0 as an
// animation step, not a static cursor.
func durationMs(jiffies uint32) (int, error) {
	if jiffies == 0 {
		return 0, fmt.Errorf("zero-jiffy display duration")
	}
	ms := int(math.Round(float64(jiffies) * 1000 / 60))
	if ms < 1 {
		ms = 1
	}
	return ms, nil
}
