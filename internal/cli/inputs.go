package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/FlagRing/internal/importer"
)

// errNoInputs is returned when neither paths nor a manifest were given.
var errNoInputs = errors.New("no inputs: pass image files, directories or --manifest")

// loadInputs resolves the pieces to pack, either from image paths or from a
// manifest. Warnings are logged; row errors in a manifest abort the load.
func loadInputs(logger *log.Logger, paths []string, manifest string) (*importer.ImageSet, error) {
	var (
		set *importer.ImageSet
		err error
	)
	switch {
	case manifest != "" && len(paths) > 0:
		return nil, errors.New("pass either image paths or --manifest, not both")
	case manifest != "":
		res := importer.ImportManifest(manifest)
		for _, w := range res.Warnings {
			logger.Warn(w)
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("manifest %s: %s", manifest, strings.Join(res.Errors, "; "))
		}
		set, err = importer.LoadSources(res.Pieces)
	case len(paths) > 0:
		set, err = importer.Load(paths)
	default:
		return nil, errNoInputs
	}
	if err != nil {
		return nil, err
	}

	for _, w := range set.Warnings {
		logger.Warn(w)
	}
	logger.Debug("inputs loaded", "pieces", set.Len())
	return set, nil
}

// numberedPath returns path unchanged for a single output, otherwise
// name_<i>.ext.
func numberedPath(path string, i, count int) string {
	if count <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), i, ext)
}

// siblingPath swaps the extension of path, adding suffix before it.
func siblingPath(path, suffix, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix + ext
}
