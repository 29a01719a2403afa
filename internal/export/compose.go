// Package export renders packing layouts: the composite image itself, plus
// PDF, label, spreadsheet, drawing and debug outputs.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/FlagRing/internal/model"
)

// ImageSource supplies the image for a placed piece. A nil image with a nil
// error means the piece has no image and is drawn as a placeholder.
type ImageSource interface {
	Image(p model.Piece) (image.Image, error)
}

// pieceColor represents an RGB color for a placeholder piece.
type pieceColor struct {
	R, G, B int
}

func (c pieceColor) nrgba() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// pieceColors is the placeholder palette shared by every renderer.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(i int) pieceColor {
	return pieceColors[i%len(pieceColors)]
}

// CanvasPoint converts a placement anchor to canvas pixel coordinates.
// Anchors are floored, then shifted by the canvas offset.
func CanvasPoint(l model.Layout, p model.Placement) image.Point {
	off := l.CanvasOffset()
	return image.Pt(int(math.Floor(p.X))+off, int(math.Floor(p.Y))+off)
}

// pixelSize rounds a piece size to whole pixels.
func pixelSize(p model.Piece) (int, int) {
	return int(math.Round(p.Width)), int(math.Round(p.Height))
}

// Compose pastes every placed piece onto a square canvas filled with
// background. Pieces are drawn in placement order without blending. A nil
// src draws every piece as a placeholder.
func Compose(l model.Layout, src ImageSource, background color.Color) (*image.NRGBA, error) {
	side := l.CanvasSide()
	canvas := imaging.New(side, side, background)

	for i, p := range l.Placements {
		var img image.Image
		if src != nil {
			var err error
			if img, err = src.Image(p.Piece); err != nil {
				return nil, fmt.Errorf("image for %q: %w", p.Piece.Label, err)
			}
		}

		w, h := pixelSize(p.Piece)
		if img == nil {
			img = placeholder(w, h, p.Piece.Label, colorFor(i).nrgba())
		} else if b := img.Bounds(); (b.Dx() != w || b.Dy() != h) && w > 0 && h > 0 {
			img = imaging.Resize(img, w, h, imaging.Lanczos)
		}

		pos := CanvasPoint(l, p)
		b := img.Bounds()
		draw.Draw(canvas, image.Rectangle{Min: pos, Max: pos.Add(b.Size())}, img, b.Min, draw.Src)
	}
	return canvas, nil
}

// placeholder draws a filled rectangle with a darker outline and, when it
// fits, the piece label.
func placeholder(w, h int, label string, fill color.NRGBA) *image.NRGBA {
	img := imaging.New(w, h, fill)
	edge := color.NRGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}
	strokeRect(img, img.Bounds(), edge)
	drawCentered(img, label, color.Black)
	return img
}

// strokeRect draws a one pixel outline just inside r.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// SaveImage writes img to path. The format follows the file extension
// (png, jpg, gif, tif, bmp). Missing parent directories are created.
func SaveImage(path string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("output %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// FileSource loads piece images from their Source path on first use.
type FileSource struct {
	cache map[string]image.Image
}

func NewFileSource() *FileSource {
	return &FileSource{cache: make(map[string]image.Image)}
}

// Image opens p.Source. Pieces without a source have no image.
func (s *FileSource) Image(p model.Piece) (image.Image, error) {
	if p.Source == "" {
		return nil, nil
	}
	if img, ok := s.cache[p.Source]; ok {
		return img, nil
	}
	img, err := imaging.Open(p.Source, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	s.cache[p.Source] = img
	return img, nil
}

// namedColors are the background names accepted besides hex notation.
var namedColors = map[string]color.NRGBA{
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"transparent": {},
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a named color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
