package importer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/FlagRing/internal/model"
)

// ErrNoImages is returned when the given paths contain no decodable image.
var ErrNoImages = errors.New("no images found")

// imageExtensions lists the file types that are decoded as pieces.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ImageSet holds decoded images and the pieces describing them. Pieces
// without an entry are drawn as placeholders.
type ImageSet struct {
	Pieces   []model.Piece
	Warnings []string
	images   map[string]image.Image // by piece ID
}

func newImageSet() *ImageSet {
	return &ImageSet{images: make(map[string]image.Image)}
}

// Image returns the decoded image for p, or nil when p has none.
func (s *ImageSet) Image(p model.Piece) (image.Image, error) {
	if img, ok := s.images[p.ID]; ok {
		return img, nil
	}
	if p.Source != "" {
		return nil, fmt.Errorf("image for %q was not loaded: %s", p.Label, p.Source)
	}
	return nil, nil
}

// Len returns the number of pieces in the set.
func (s *ImageSet) Len() int {
	return len(s.Pieces)
}

// add appends a piece backed by img, sized from the image bounds.
func (s *ImageSet) add(path string, img image.Image) {
	b := img.Bounds()
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := model.NewPiece(label, float64(b.Dx()), float64(b.Dy()))
	p.Source = path
	s.Pieces = append(s.Pieces, p)
	s.images[p.ID] = img
}

// decode opens one image file, honouring EXIF orientation.
func decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFiles decodes every file in paths into a piece. Any failure aborts.
func LoadFiles(paths []string) (*ImageSet, error) {
	set := newImageSet()
	for _, path := range paths {
		img, err := decode(path)
		if err != nil {
			return nil, err
		}
		set.add(path, img)
	}
	if set.Len() == 0 {
		return nil, ErrNoImages
	}
	return set, nil
}

// LoadDir decodes the image files directly inside dir in name order. Other
// files are skipped with a warning; subdirectories are ignored.
func LoadDir(dir string) (*ImageSet, error) {
	set := newImageSet()
	if err := set.loadDir(dir); err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	return set, nil
}

func (s *ImageSet) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !IsImageFile(path) {
			s.Warnings = append(s.Warnings, fmt.Sprintf("Skipped non-image file %s", e.Name()))
			continue
		}
		img, err := decode(path)
		if err != nil {
			return err
		}
		s.add(path, img)
	}
	return nil
}

// Load accepts a mix of image files and directories, as given on the
// command line, and merges them into one set.
func Load(paths []string) (*ImageSet, error) {
	set := newImageSet()
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat input: %w", err)
		}
		if info.IsDir() {
			if err := set.loadDir(path); err != nil {
				return nil, err
			}
			continue
		}
		img, err := decode(path)
		if err != nil {
			return nil, err
		}
		set.add(path, img)
	}
	if set.Len() == 0 {
		return nil, ErrNoImages
	}
	return set, nil
}

// LoadSources decodes the images named by manifest pieces. Each distinct
// source is decoded once; pieces with no size take it from their image.
// Pieces without a source stay placeholders.
func LoadSources(pieces []model.Piece) (*ImageSet, error) {
	set := newImageSet()
	cache := make(map[string]image.Image)

	for _, p := range pieces {
		if p.Source != "" {
			img, ok := cache[p.Source]
			if !ok {
				var err error
				if img, err = decode(p.Source); err != nil {
					return nil, err
				}
				cache[p.Source] = img
			}
			b := img.Bounds()
			if p.Width == 0 && p.Height == 0 {
				p.Width, p.Height = float64(b.Dx()), float64(b.Dy())
			} else if float64(b.Dx()) != p.Width || float64(b.Dy()) != p.Height {
				set.Warnings = append(set.Warnings, fmt.Sprintf(
					"%s: image is %dx%d, manifest says %gx%g; image will be resized",
					p.Label, b.Dx(), b.Dy(), p.Width, p.Height))
			}
			set.images[p.ID] = img
		}
		set.Pieces = append(set.Pieces, p)
	}
	if set.Len() == 0 {
		return nil, ErrNoImages
	}
	return set, nil
}
