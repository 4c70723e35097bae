// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report collects extraction results by group, writes the JSON
// artifact, and prints the run summary.
package report

import (
	"bytes"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// Grouped maps group label -> file name -> result. Groups keep the order in
// which they were declared; files keep the order in which they were
// declared or first set. Grouped is not safe for concurrent use; the
// pipeline funnels every write through a single collector.
type Grouped struct {
	labels []string
	groups map[string]*group
}

type group struct {
	files   []string
	results map[string]types.ExtractionResult
}

// NewGrouped returns a Grouped holding the given labels, all empty.
func NewGrouped(labels []string) *Grouped {
	g := &Grouped{groups: make(map[string]*group, len(labels))}
	for _, l := range labels {
		g.group(l)
	}
	return g
}

func (g *Grouped) group(label string) *group {
	if grp, ok := g.groups[label]; ok {
		return grp
	}
	grp := &group{results: make(map[string]types.ExtractionResult)}
	g.groups[label] = grp
	g.labels = append(g.labels, label)
	return grp
}

// Declare fixes the output position of filename within label without
// recording a result.
func (g *Grouped) Declare(label, filename string) {
	grp := g.group(label)
	for _, f := range grp.files {
		if f == filename {
			return
		}
	}
	grp.files = append(grp.files, filename)
}

// Set records the result for (label, filename), replacing any earlier one.
func (g *Grouped) Set(label, filename string, r types.ExtractionResult) {
	g.Declare(label, filename)
	g.groups[label].results[filename] = r
}

// Get returns the result recorded for (label, filename).
func (g *Grouped) Get(label, filename string) (types.ExtractionResult, bool) {
	grp, ok := g.groups[label]
	if !ok {
		return types.ExtractionResult{}, false
	}
	r, ok := grp.results[filename]
	return r, ok
}

// Labels returns the group labels in order.
func (g *Grouped) Labels() []string {
	return append([]string(nil), g.labels...)
}

// Files returns the file names with a recorded result in label, in order.
func (g *Grouped) Files(label string) []string {
	grp, ok := g.groups[label]
	if !ok {
		return nil
	}
	files := make([]string, 0, len(grp.results))
	for _, f := range grp.files {
		if _, ok := grp.results[f]; ok {
			files = append(files, f)
		}
	}
	return files
}

// Len returns the number of recorded results across all groups.
func (g *Grouped) Len() int {
	n := 0
	for _, grp := range g.groups {
		n += len(grp.results)
	}
	return n
}

// MarshalJSON writes groups and files in order. Declared files without a
// result are omitted.
func (g *Grouped) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range g.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, label); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, f := range g.Files(label) {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, f); err != nil {
				return nil, err
			}
			data, err := g.groups[label].results[f].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	data, err := types.MarshalUnescaped(key)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}
