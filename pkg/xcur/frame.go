// Package xcur turns decoded cursor frames into the inputs xcursorgen
// consumes: per-frame PNG files and a .cursor directory file listing size,
// hotspot, image path, and display duration per animation step.
package xcur

import "image"

// Frame is one decoded animation frame with its hotspot.
type Frame struct {
	Img  *image.RGBA
	HotX int
	HotY int
}

// Size is the nominal cursor size: the larger of the two dimensions.
func (f Frame) Size() int {
	b := f.Img.Bounds()
	if b.Dx() > b.Dy() {
		return b.Dx()
	}
	return b.Dy()
}
