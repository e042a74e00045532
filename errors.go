package hwdraw

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by drawing operations. Callers match them with
// [errors.Is], including through the [Context.Status] accumulator.
var (
	// ErrUnsupported is returned for styles the pipeline deliberately does
	// not implement: dash patterns, gradients with more than two stops, and
	// blurred rectangles.
	ErrUnsupported = errors.New("hwdraw: unsupported style")

	// ErrUnimplemented is returned by explicitly stubbed operations, such as
	// capturing an image back from the GPU.
	ErrUnimplemented = errors.New("hwdraw: unimplemented")

	// ErrAtlasExhausted is returned when the glyph atlas has no free region
	// large enough for a newly rasterized glyph.
	ErrAtlasExhausted = errors.New("hwdraw: glyph atlas exhausted")

	// ErrUnbalancedStack is returned by Restore when only the base render
	// state remains on the stack.
	ErrUnbalancedStack = errors.New("hwdraw: restore without matching save")

	// errShortPixelData reports image data smaller than width*height*bpp.
	errShortPixelData = errors.New("hwdraw: pixel data too short")
)

// BackendError wraps an opaque failure from the GPU capability interface,
// preserving the original cause for diagnostics.
type BackendError struct {
	// Op is the backend operation that failed, e.g. "create texture".
	Op string

	// Err is the underlying backend error.
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("hwdraw: backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// backendErr wraps err as a *BackendError, or returns nil if err is nil.
func backendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// ShaderCompileError is returned when a shader permutation fails to compile.
// The same permutation key is never retried: the failure is cached and
// returned verbatim on subsequent lookups.
type ShaderCompileError struct {
	// Key identifies the failed permutation.
	Key ShaderKey

	// Err is the underlying compiler or backend error.
	Err error
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("hwdraw: shader compile failed for %v: %v", e.Key, e.Err)
}

func (e *ShaderCompileError) Unwrap() error { return e.Err }
