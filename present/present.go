// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package present uploads rendered surfaces to a host GPU texture.
//
// The host application (for example a gogpu window) owns the device and the
// texture; a Presenter only encodes surface pixels in the host's surface
// format and hands them to the texture's UpdateData. Pixels stay
// premultiplied, matching how tilecomp composites.
package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilecomp"
)

// Errors returned by this package.
var (
	ErrNilProvider       = errors.New("present: nil DeviceProvider")
	ErrNilTarget         = errors.New("present: nil texture")
	ErrNilSurface        = errors.New("present: nil surface")
	ErrUnsupportedFormat = errors.New("present: unsupported texture format")
	ErrSizeMismatch      = errors.New("present: surface size changed")
)

// Presenter encodes surfaces for one host texture.
// A Presenter is not safe for concurrent use.
type Presenter struct {
	format        gputypes.TextureFormat
	target        gpucontext.TextureUpdater
	width, height int
	buf           []byte
	frames        int
}

// New creates a presenter writing to target in provider's surface format.
// An undefined surface format selects RGBA8Unorm. width and height fix the
// size of every presented surface.
func New(provider gpucontext.DeviceProvider, target gpucontext.TextureUpdater, width, height int) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if target == nil {
		return nil, ErrNilTarget
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	if BytesPerPixel(format) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	tilecomp.Logger().Debug("present: target",
		"adapter", provider.AdapterInfo().Name,
		"format", format,
		"width", width,
		"height", height)
	return &Presenter{format: format, target: target, width: width, height: height}, nil
}

// Format returns the texture format pixels are encoded in.
func (p *Presenter) Format() gputypes.TextureFormat { return p.format }

// Frames returns the number of surfaces presented.
func (p *Presenter) Frames() int { return p.frames }

// Present encodes s and uploads it to the target texture.
func (p *Presenter) Present(s *tilecomp.Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	if s.Width() != p.width || s.Height() != p.height {
		return fmt.Errorf("%w: %dx%d, texture is %dx%d", ErrSizeMismatch, s.Width(), s.Height(), p.width, p.height)
	}
	buf, err := Encode(s, p.format, p.buf)
	if err != nil {
		return err
	}
	p.buf = buf
	if err := p.target.UpdateData(buf); err != nil {
		return fmt.Errorf("present: texture update failed: %w", err)
	}
	p.frames++
	tilecomp.Logger().Debug("present: uploaded surface",
		"frame", p.frames,
		"bytes", len(buf))
	return nil
}

// BytesPerPixel returns the encoded size of one pixel in format, or zero if
// the format is not supported.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 0
	}
}

// Encode writes the premultiplied pixels of s in format into dst, growing
// it as needed, and returns the encoded bytes. R8Unorm keeps only alpha.
func Encode(s *tilecomp.Surface, format gputypes.TextureFormat, dst []byte) ([]byte, error) {
	bpp := BytesPerPixel(format)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	n := s.Width() * s.Height() * bpp
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	i := 0
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.At(x, y).RGBA()
			switch format {
			case gputypes.TextureFormatBGRA8Unorm:
				dst[i], dst[i+1], dst[i+2], dst[i+3] = c.B, c.G, c.R, c.A
			case gputypes.TextureFormatR8Unorm:
				dst[i] = c.A
			default:
				dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			}
			i += bpp
		}
	}
	return dst, nil
}
