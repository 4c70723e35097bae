// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the run logger: human-readable lines on the
// console and a timestamped log file in the output directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileLayout is the time layout of the log file name.
const FileLayout = "20060102_150405"

// Options configures New.
type Options struct {
	// Dir receives extraction_<timestamp>.log. Empty disables the file.
	Dir string
	// Level is a zap level name (debug, info, warn, error).
	Level string
	// Console receives console output. Nil means os.Stderr.
	Console io.Writer
	// Now overrides the clock used to name the log file.
	Now func() time.Time
}

// Handle owns the logger and its file.
type Handle struct {
	Logger *zap.Logger
	Path   string
	file   *os.File
}

// Close flushes the logger and closes the log file.
func (h *Handle) Close() error {
	_ = h.Logger.Sync()
	if h.file == nil {
		return nil
	}
	return h.file.Close()
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return "extraction_" + t.Format(FileLayout) + ".log"
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// New builds the run logger. Both sinks log at the configured level.
func New(opts Options) (*Handle, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(console), lvl),
	}

	h := &Handle{}
	if opts.Dir != "" {
		h.Path = filepath.Join(opts.Dir, FileName(now()))
		f, err := os.OpenFile(h.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		h.file = f
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), lvl))
	}

	h.Logger = zap.New(zapcore.NewTee(cores...))
	return h, nil
}
