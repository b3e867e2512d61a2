// Package photo finds photos on disk, decodes them and reads the metadata
// the overlay needs.
package photo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// montageDir holds photos meant for multi-photo montages, which the frame
// does not compose.
const montageDir = "montage"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Scan lists the photos under root, recursing into subdirectories. Hidden
// directories, the montage directory and any directory named in exclude
// are skipped. Paths are returned in lexical order.
func Scan(root string, exclude []string) ([]string, error) {
	skip := make(map[string]bool, len(exclude)+1)
	for _, name := range exclude {
		skip[strings.TrimSpace(name)] = true
	}
	skip[montageDir] = true

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (skip[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				logDebug("skipping directory %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("photo: scan %q: %w", root, err)
	}
	return paths, nil
}
