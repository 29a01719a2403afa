package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/FlagRing/internal/engine"
	"github.com/piwi3910/FlagRing/internal/model"
)

// LayoutVersion is written to every saved layout.
const LayoutVersion = "1.0.0"

// LayoutFile is the on-disk form of a packing result. Pieces keep their
// Source path so the composite can be rendered again later.
type LayoutFile struct {
	Version   string             `json:"version"`
	CreatedAt string             `json:"created_at"`
	Settings  model.PackSettings `json:"settings"`
	Layout    model.Layout       `json:"layout"`
}

// SaveLayout writes l and the settings that produced it as indented JSON.
// Image paths are stored absolute.
func SaveLayout(path string, l model.Layout, settings model.PackSettings) error {
	placements := make([]model.Placement, len(l.Placements))
	copy(placements, l.Placements)
	for i := range placements {
		if src := placements[i].Piece.Source; src != "" {
			abs, err := filepath.Abs(src)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", src, err)
			}
			placements[i].Piece.Source = abs
		}
	}
	l.Placements = placements

	file := LayoutFile{
		Version:   LayoutVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings,
		Layout:    l,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout reads a saved layout and checks that it is still valid: every
// piece inside the radius and no two pieces overlapping. Relative image
// paths are resolved against the layout file's directory.
func LoadLayout(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var file LayoutFile
	if err := json.Unmarshal(data, &file); err != nil {
		return LayoutFile{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if file.Version == "" {
		return LayoutFile{}, fmt.Errorf("invalid layout file: missing version field")
	}
	if err := engine.Verify(file.Layout); err != nil {
		return LayoutFile{}, fmt.Errorf("invalid layout file: %w", err)
	}

	base := filepath.Dir(path)
	for i := range file.Layout.Placements {
		src := file.Layout.Placements[i].Piece.Source
		if src != "" && !filepath.IsAbs(src) {
			file.Layout.Placements[i].Piece.Source = filepath.Join(base, src)
		}
	}
	return file, nil
}
