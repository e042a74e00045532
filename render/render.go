// Package render integrates the drawing pipeline with host applications
// that own a GPU device. The host implements gpucontext.DeviceProvider and
// hands it in; the pipeline never creates a device of its own, so textures
// and buffers share the host's resource lifetime.
package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hwdraw"
)

// DeviceHandle provides GPU device access from the host application. It is
// an alias for gpucontext.DeviceProvider, keeping full compatibility with
// the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// SurfaceFormat maps the host surface format to the pipeline's image
// format. Only 8-bit RGBA-class surfaces are supported.
func SurfaceFormat(h DeviceHandle) (hwdraw.ImageFormat, error) {
	switch f := h.SurfaceFormat(); f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return hwdraw.FormatRGBA8, nil
	case gputypes.TextureFormatUndefined:
		return 0, fmt.Errorf("render: surface format not configured")
	default:
		return 0, fmt.Errorf("render: unsupported surface format %v", f)
	}
}

// Session binds a drawing source to a host device for the lifetime of a
// window or offscreen target. The backend parameter is the capability
// implementation rendering into the host's surface.
type Session struct {
	handle DeviceHandle
	source *hwdraw.Source
}

// NewSession validates the host surface and creates the shared drawing
// source on the backend.
func NewSession(h DeviceHandle, backend hwdraw.GPUContext, opts hwdraw.SourceOptions) (*Session, error) {
	if _, err := SurfaceFormat(h); err != nil {
		return nil, err
	}
	src, err := hwdraw.NewSource(backend, opts)
	if err != nil {
		return nil, err
	}
	return &Session{handle: h, source: src}, nil
}

// Source returns the session's shared drawing source.
func (s *Session) Source() *hwdraw.Source {
	return s.source
}

// Frame starts drawing a frame at the given size in device pixels.
func (s *Session) Frame(width, height int) *hwdraw.Context {
	return s.source.RenderContext(width, height)
}

// devicePoller is the optional polling capability of a host device.
// gpucontext.Device is an opaque token; concrete devices such as
// wgpu's expose Poll.
type devicePoller interface {
	Poll(wait bool)
}

// Poll drives the host device's callback processing without blocking.
// Devices without a polling capability make this a no-op.
func (s *Session) Poll() {
	if dev, ok := s.handle.Device().(devicePoller); ok {
		dev.Poll(false)
	}
}

// Close releases the session's GPU resources. The host device itself is
// owned by the host and is not destroyed.
func (s *Session) Close() {
	s.source.Release()
}
