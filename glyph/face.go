// Package glyph shapes text runs and rasterizes them into an alpha atlas
// for the text filter.
//
// Shaping uses go-text/typesetting (HarfBuzz); outlines come from
// golang.org/x/image/font/sfnt and are rasterized with
// golang.org/x/image/vector at Oversample times the horizontal resolution,
// which the filter's subpixel kernel expects.
package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/tilecomp/internal/cache"
)

// Errors returned by this package.
var (
	ErrInvalidFont = errors.New("glyph: invalid font")
	ErrAtlasFull   = errors.New("glyph: atlas full")
	ErrEmptyRun    = errors.New("glyph: empty run")
)

// Face is a parsed font usable for shaping and rasterization. A Face is safe
// for concurrent use.
type Face struct {
	outlines *sfnt.Font
	shaping  *gtfont.Font
	runs     *cache.Cache[runKey, *Run]
}

// runCacheSize is the number of shaped runs kept per face.
const runCacheSize = 256

type runKey struct {
	text string
	size float32
}

// ParseFace parses TrueType or OpenType data.
func ParseFace(data []byte) (*Face, error) {
	outlines, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &Face{
		outlines: outlines,
		shaping:  face.Font,
		runs:     cache.New[runKey, *Run](runCacheSize),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultFace *Face
	defaultErr  error
)

// DefaultFace returns the Go Regular font.
func DefaultFace() (*Face, error) {
	defaultOnce.Do(func() {
		defaultFace, defaultErr = ParseFace(goregular.TTF)
	})
	return defaultFace, defaultErr
}

// CacheStats reports the shaped-run cache counters.
func (f *Face) CacheStats() cache.Stats { return f.runs.Stats() }
