// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package groups loads the mapping from group labels to transcript file
// names and turns it into extraction tasks.
package groups

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// Group is one labelled, ordered list of file names. File names are matched
// against the source directory verbatim (full-width punctuation included).
type Group struct {
	Label string   `yaml:"label"`
	Files []string `yaml:"files"`
}

// Config is the on-disk grouping file:
//
//	groups:
//	  - label: "第一章：冷战与大航海时代"
//	    files:
//	      - "已核对：第2集.docx"
type Config struct {
	Groups []Group `yaml:"groups"`
}

// Load reads and parses a grouping file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading groups file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing groups file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a grouping file. Group and file order are kept. A label or a
// file listed twice in the same group is rejected because results are keyed
// by (label, file name).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	labels := make(map[string]bool, len(cfg.Groups))
	for i, g := range cfg.Groups {
		if strings.TrimSpace(g.Label) == "" {
			return nil, fmt.Errorf("group %d has no label", i+1)
		}
		if labels[g.Label] {
			return nil, fmt.Errorf("group %q listed more than once", g.Label)
		}
		labels[g.Label] = true

		files := make(map[string]bool, len(g.Files))
		for _, f := range g.Files {
			if files[f] {
				return nil, fmt.Errorf("group %q lists %q more than once", g.Label, f)
			}
			files[f] = true
		}
	}
	return &cfg, nil
}

// FromPaths builds a single group labelled label holding the base names of
// paths, in the given order.
func FromPaths(label string, paths []string) *Config {
	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = filepath.Base(p)
	}
	return &Config{Groups: []Group{{Label: label, Files: files}}}
}

// Labels returns the group labels in declaration order.
func (c *Config) Labels() []string {
	labels := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		labels[i] = g.Label
	}
	return labels
}

// Tasks expands the groups into one task per file, in declaration order.
// Each file is expected directly under sourceDir.
func (c *Config) Tasks(sourceDir string) []types.ExtractionTask {
	var tasks []types.ExtractionTask
	for _, g := range c.Groups {
		for _, f := range g.Files {
			tasks = append(tasks, types.ExtractionTask{
				Group:    g.Label,
				Filename: f,
				Path:     filepath.Join(sourceDir, f),
			})
		}
	}
	return tasks
}

// Write saves c as YAML at path.
func Write(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling groups: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
