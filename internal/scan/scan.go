// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan lists transcript files in a source directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/transcript-extract/internal/extract"
)

// Dir returns the paths of the immediate children of dir whose extension is
// supported, sorted by file name. Subdirectories are not descended into and
// files are not opened.
func Dir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if extract.IsSupported(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}
