// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON writes g to path as indented UTF-8 JSON with non-ASCII text
// left literal. The file is written to a temporary name in the same
// directory and renamed into place.
func WriteJSON(path string, g *Grouped) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".extract-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	encErr := enc.Encode(g)
	if encErr == nil {
		encErr = tmp.Chmod(0o644)
	}
	closeErr := tmp.Close()
	if encErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing results: %w", encErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
