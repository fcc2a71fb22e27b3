// Package imageio decodes, encodes and names image files on disk.
package imageio

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Extensions lists the formats Save can encode, keyed by lowercase extension.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp"}

// Open decodes the image at path. The format is detected from content.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}

// Save encodes img to path in the format named by the path's extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}

// OutputPath places prefix+basename(src) in dir. Only the final path segment
// of src is used.
func OutputPath(dir, src, prefix string) string {
	return filepath.Join(dir, prefix+filepath.Base(src))
}

// List returns the files in dir matching glob, in lexical order.
func List(dir, glob string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Supported reports whether path has an extension Save can encode.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
