// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/transcript-extract/internal/extract"
	"github.com/pdiddy/transcript-extract/pkg/types"
)

// fakeExtractor returns canned text keyed by base name. Names in missing
// fail with fs.ErrNotExist; names in panics panic.
type fakeExtractor struct {
	text    map[string]string
	missing map[string]bool
	panics  map[string]bool
	fail    map[string]error
	delay   time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (string, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	name := filepath.Base(path)
	switch {
	case f.missing[name]:
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	case f.panics[name]:
		panic("boom in " + name)
	case f.fail[name] != nil:
		return "", f.fail[name]
	}
	return f.text[name], nil
}

func tasksFor(group string, names ...string) []types.ExtractionTask {
	out := make([]types.ExtractionTask, 0, len(names))
	for _, n := range names {
		out = append(out, types.ExtractionTask{Group: group, Filename: n, Path: filepath.Join("src", n)})
	}
	return out
}

func TestRunIsolatesMissingFile(t *testing.T) {
	fx := &fakeExtractor{
		text: map[string]string{
			"1.txt": "一", "2.txt": "二二", "4.txt": "四四四四", "5.txt": "五",
		},
		missing: map[string]bool{"3.txt": true},
	}
	tasks := tasksFor("g", "1.txt", "2.txt", "3.txt", "4.txt", "5.txt")

	r := &Runner{Extractor: fx}
	got := r.Run(context.Background(), []string{"g"}, tasks)

	require.Equal(t, 5, got.Len())
	assert.Equal(t, []string{"1.txt", "2.txt", "3.txt", "4.txt", "5.txt"}, got.Files("g"))

	ok := 0
	for _, name := range got.Files("g") {
		res, found := got.Get("g", name)
		require.True(t, found)
		if res.OK() {
			ok++
		}
	}
	assert.Equal(t, 4, ok)

	res, _ := got.Get("g", "3.txt")
	require.False(t, res.OK())
	assert.Equal(t, types.KindFileNotFound, res.Failure.Kind)
	assert.Equal(t, types.FileNotFoundMessage, res.Failure.Message)

	res, _ = got.Get("g", "4.txt")
	assert.Equal(t, 4, res.CharCount)
	assert.Equal(t, 2, res.WordEstimate)
}

func TestRunBoundsConcurrency(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = string(rune('a'+i)) + ".txt"
	}
	fx := &fakeExtractor{delay: 5 * time.Millisecond}

	r := &Runner{Extractor: fx, Workers: 3}
	got := r.Run(context.Background(), []string{"g"}, tasksFor("g", names...))

	assert.Equal(t, 20, got.Len())
	assert.Equal(t, int32(20), fx.calls.Load())
	assert.LessOrEqual(t, fx.peak.Load(), int32(3))
	assert.Equal(t, int32(0), fx.inFlight.Load())
}

func TestRunDefaultWorkers(t *testing.T) {
	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a'+i)) + ".txt"
	}
	fx := &fakeExtractor{delay: 5 * time.Millisecond}

	r := &Runner{Extractor: fx}
	r.Run(context.Background(), []string{"g"}, tasksFor("g", names...))

	assert.LessOrEqual(t, fx.peak.Load(), int32(DefaultWorkers))
}

func TestRunRecoversPanics(t *testing.T) {
	fx := &fakeExtractor{
		text:   map[string]string{"a.txt": "ok", "c.txt": "ok"},
		panics: map[string]bool{"b.txt": true},
	}

	r := &Runner{Extractor: fx, Workers: 2}
	got := r.Run(context.Background(), []string{"g"}, tasksFor("g", "a.txt", "b.txt", "c.txt"))

	require.Equal(t, 3, got.Len())
	res, _ := got.Get("g", "b.txt")
	require.False(t, res.OK())
	assert.Equal(t, types.KindExtraction, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, "boom in b.txt")

	res, _ = got.Get("g", "c.txt")
	assert.True(t, res.OK())
}

func TestRunRecordsErrorMessage(t *testing.T) {
	fx := &fakeExtractor{
		fail: map[string]error{"x.doc": errors.New(`unsupported_format: unsupported file type ".doc"`)},
	}

	r := &Runner{Extractor: fx}
	got := r.Run(context.Background(), []string{"g"}, tasksFor("g", "x.doc"))

	res, _ := got.Get("g", "x.doc")
	require.False(t, res.OK())
	assert.Equal(t, types.KindExtraction, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, `unsupported file type ".doc"`)
}

func TestRunKeepsEmptyAndFailedGroups(t *testing.T) {
	fx := &fakeExtractor{
		text:    map[string]string{"ok.txt": "正文"},
		missing: map[string]bool{"gone.txt": true},
	}
	tasks := append(tasksFor("全部失败", "gone.txt"), tasksFor("正常", "ok.txt")...)

	r := &Runner{Extractor: fx}
	got := r.Run(context.Background(), []string{"空组", "全部失败", "正常"}, tasks)

	assert.Equal(t, []string{"空组", "全部失败", "正常"}, got.Labels())
	assert.Empty(t, got.Files("空组"))
	assert.Equal(t, []string{"gone.txt"}, got.Files("全部失败"))
}

func TestRunSameFileInTwoGroups(t *testing.T) {
	fx := &fakeExtractor{text: map[string]string{"shared.txt": "共享"}}
	tasks := append(tasksFor("a", "shared.txt"), tasksFor("b", "shared.txt")...)

	r := &Runner{Extractor: fx}
	got := r.Run(context.Background(), []string{"a", "b"}, tasks)

	assert.Equal(t, 2, got.Len())
	assert.Equal(t, int32(2), fx.calls.Load())
}

func TestRunReportsProgress(t *testing.T) {
	fx := &fakeExtractor{
		text:    map[string]string{"a.txt": "甲", "b.txt": "乙"},
		missing: map[string]bool{"c.txt": true},
	}
	var status bytes.Buffer
	var mu sync.Mutex
	var seen []Progress

	r := &Runner{
		Extractor: fx,
		Status:    &status,
		OnProgress: func(p Progress) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, p)
		},
	}
	r.Run(context.Background(), []string{"g"}, tasksFor("g", "a.txt", "b.txt", "c.txt"))

	require.Len(t, seen, 3)
	for i, p := range seen {
		assert.Equal(t, i+1, p.Done)
		assert.Equal(t, 3, p.Total)
	}

	lines := strings.Split(strings.TrimSpace(status.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, status.String(), "[3/3]")
	assert.Contains(t, status.String(), "failed:    c.txt (File not found)")
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("第一"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.srt"), []byte("1\n00:00:01,000 --> 00:00:02,000\n字幕\n"), 0o644))
	tasks := []types.ExtractionTask{
		{Group: "g", Filename: "a.txt", Path: filepath.Join(dir, "a.txt")},
		{Group: "g", Filename: "b.srt", Path: filepath.Join(dir, "b.srt")},
		{Group: "g", Filename: "c.txt", Path: filepath.Join(dir, "c.txt")},
	}

	r := &Runner{Extractor: extract.New(nil), Workers: 2}
	first, err := r.Run(context.Background(), []string{"g"}, tasks).MarshalJSON()
	require.NoError(t, err)
	second, err := r.Run(context.Background(), []string{"g"}, tasks).MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"c.txt":{"error":"File not found"}`)
	assert.Contains(t, string(first), `"text":"字幕"`)
}

func TestRunNoTasks(t *testing.T) {
	r := &Runner{Extractor: &fakeExtractor{}}
	got := r.Run(context.Background(), []string{"only"}, nil)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []string{"only"}, got.Labels())
}
