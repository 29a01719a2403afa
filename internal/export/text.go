package export

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *image.NRGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// textSize returns the pixel width and height of s.
func textSize(s string) (int, int) {
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// drawCentered draws s centered in dst, or nothing if it does not fit.
func drawCentered(dst *image.NRGBA, s string, c color.Color) {
	if s == "" {
		return
	}
	b := dst.Bounds()
	w, h := textSize(s)
	if w > b.Dx()-4 || h > b.Dy()-2 {
		return
	}
	drawText(dst, b.Min.X+(b.Dx()-w)/2, b.Min.Y+(b.Dy()-h)/2, s, c)
}
