// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// Error is returned by every extractor. It carries the failure kind, the
// file it concerns, and the underlying cause.
type Error struct {
	Kind types.ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind types.ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// ioError classifies a failure to open or read path. A missing file becomes
// KindFileNotFound; anything else keeps the fallback kind.
func ioError(path string, err error, fallback types.ErrorKind) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return newError(types.KindFileNotFound, path, err)
	}
	return newError(fallback, path, err)
}

// KindOf reports the kind of err. Errors that did not come from this package
// map to KindFileNotFound when they wrap fs.ErrNotExist and KindExtraction
// otherwise.
func KindOf(err error) types.ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, fs.ErrNotExist) {
		return types.KindFileNotFound
	}
	return types.KindExtraction
}
