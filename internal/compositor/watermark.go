// Package compositor burns semi-transparent text into images and produces
// preview-sized copies for display.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace opens a TrueType/OpenType face at size points (72 DPI, so one
// point is one pixel). An empty path selects the embedded Go Regular font.
func LoadFace(path string, size float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// Watermarker anchors text at the bottom-right corner of an image.
type Watermarker struct {
	Face    font.Face
	Margin  int
	Opacity uint8
}

// Measure returns the rendered size of text: advance width by ascent+descent.
func (w Watermarker) Measure(text string) (int, int) {
	m := w.Face.Metrics()
	return font.MeasureString(w.Face, text).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Anchor is the top-left corner of the text block for an image of the given
// bounds. It is not clamped: text wider or taller than the image goes
// negative and is clipped.
func (w Watermarker) Anchor(b image.Rectangle, text string) image.Point {
	tw, th := w.Measure(text)
	return image.Pt(b.Min.X+b.Dx()-tw-w.Margin, b.Min.Y+b.Dy()-th-w.Margin)
}

// Stage renders text white on an opaque black canvas sized exactly to the
// text, then gives every pixel the watermarker's opacity. The background
// keeps that alpha too, so a faint dark box shows behind the glyphs.
func (w Watermarker) Stage(text string) *image.NRGBA {
	tw, th := w.Measure(text)
	canvas := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.White),
		Face: w.Face,
		Dot:  fixed.P(0, w.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	for i := 3; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i] = w.Opacity
	}
	return canvas
}

// Apply returns a copy of img with text blended at its anchor. img is not
// modified. Applying to its own output blends again and the alpha compounds.
func (w Watermarker) Apply(img image.Image, text string) *image.NRGBA {
	out := imaging.Clone(img)
	if text == "" {
		return out
	}
	stage := w.Stage(text)
	at := w.Anchor(out.Bounds(), text)
	r := stage.Bounds().Add(at)
	draw.Draw(out, r, stage, image.Point{}, draw.Over)
	return out
}
