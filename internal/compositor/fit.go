package compositor

import (
	"image"

	"github.com/disintegration/imaging"
)

// Suggestion is the window size the preview would like, in pixels.
type Suggestion struct {
	Width  int
	Height int
}

// Display bounds a preview.
type Display struct {
	MaxSize int
	MinSize int
	Chrome  int // added to the suggested height for controls
}

// FitForDisplay returns a preview copy of img no larger than MaxSize on either
// side, preserving aspect ratio and never upscaling. When both sides of the
// preview are at least MinSize it also suggests a window size; otherwise ok is
// false and the caller keeps its current size.
//
// An image already within MaxSize is returned as is. Callers must never save
// the returned image.
func (d Display) FitForDisplay(img image.Image) (image.Image, Suggestion, bool) {
	out := img
	b := img.Bounds()
	if b.Dx() > d.MaxSize || b.Dy() > d.MaxSize {
		out = imaging.Fit(img, d.MaxSize, d.MaxSize, imaging.Lanczos)
	}
	ob := out.Bounds()
	if ob.Dx() < d.MinSize || ob.Dy() < d.MinSize {
		return out, Suggestion{}, false
	}
	return out, Suggestion{Width: ob.Dx(), Height: ob.Dy() + d.Chrome}, true
}
