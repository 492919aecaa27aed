package tilecomp

import (
	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/internal/blend"
)

// FillRule is the winding rule of a mask.
type FillRule uint8

const (
	// MaskNone marks a draw without a mask: every pixel of the tile is
	// covered.
	MaskNone FillRule = iota
	NonZero
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case MaskNone:
		return "none"
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// Combine selects how the filtered texture color combines with a draw's
// base color.
type Combine uint8

const (
	// CombineNone uses the base color alone; the filter is not evaluated.
	CombineNone Combine = iota
	// CombineSrcIn takes the filtered color, with alpha scaled by the base
	// alpha.
	CombineSrcIn
	// CombineDestIn keeps the base color, with alpha scaled by the filtered
	// alpha.
	CombineDestIn
)

// BlendMode is one of the sixteen blend functions.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

func (m BlendMode) String() string { return blend.Mode(m).String() }

// ParseBlendMode returns the blend mode with the given CSS name.
func ParseBlendMode(name string) (BlendMode, bool) {
	m, ok := blend.ParseMode(name)
	return BlendMode(m), ok
}

// BorderSide selects tile edges drawn by a border-mode draw.
type BorderSide uint8

const (
	BorderLeft BorderSide = 1 << iota
	BorderTop
	BorderRight
	BorderBottom

	BorderAll = BorderLeft | BorderTop | BorderRight | BorderBottom
)

// ControlWord is the packed per-draw configuration:
//
//	bits [0:2]   mask winding rule
//	bit  2       border mode
//	bits [4:6]   filter kind
//	bits [6:8]   combine op
//	bits [8:12]  blend mode, or border sides in border mode
type ControlWord uint32

const (
	maskShift    = 0
	borderBit    = 1 << 2
	filterShift  = 4
	combineShift = 6
	blendShift   = 8

	twoBits  = 0x3
	fourBits = 0xf
)

// NewControl packs a control word.
func NewControl(rule FillRule, kind filter.Kind, combine Combine, mode BlendMode) ControlWord {
	return ControlWord(uint32(rule)&twoBits<<maskShift |
		uint32(kind)&twoBits<<filterShift |
		uint32(combine)&twoBits<<combineShift |
		uint32(mode)&fourBits<<blendShift)
}

// BorderControl packs a border-mode control word. Border draws paint the
// selected tile edges in the base color, within the mask if one is given.
func BorderControl(rule FillRule, sides BorderSide) ControlWord {
	return ControlWord(uint32(rule)&twoBits<<maskShift | borderBit |
		uint32(sides)&fourBits<<blendShift)
}

// Mask returns the winding rule.
func (c ControlWord) Mask() FillRule { return FillRule(uint32(c) >> maskShift & twoBits) }

// Filter returns the filter kind.
func (c ControlWord) Filter() filter.Kind { return filter.Kind(uint32(c) >> filterShift & twoBits) }

// Combine returns the combine op.
func (c ControlWord) Combine() Combine { return Combine(uint32(c) >> combineShift & twoBits) }

// IsBorder reports whether the word is in border mode.
func (c ControlWord) IsBorder() bool { return uint32(c)&borderBit != 0 }

// Blend returns the blend mode. Border words always blend normally.
func (c ControlWord) Blend() BlendMode {
	if c.IsBorder() {
		return BlendNormal
	}
	return BlendMode(uint32(c) >> blendShift & fourBits)
}

// BorderSides returns the edges of a border word, or zero for other words.
func (c ControlWord) BorderSides() BorderSide {
	if !c.IsBorder() {
		return 0
	}
	return BorderSide(uint32(c) >> blendShift & fourBits)
}
