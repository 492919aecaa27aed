package tilecomp

import (
	"testing"

	"github.com/gogpu/tilecomp/filter"
)

func TestControlWordRoundTrip(t *testing.T) {
	rules := []FillRule{MaskNone, NonZero, EvenOdd}
	kinds := []filter.Kind{filter.KindNone, filter.KindRadialGradient, filter.KindText, filter.KindBlur}
	combines := []Combine{CombineNone, CombineSrcIn, CombineDestIn}

	for _, rule := range rules {
		for _, kind := range kinds {
			for _, op := range combines {
				for mode := BlendNormal; mode <= BlendLuminosity; mode++ {
					c := NewControl(rule, kind, op, mode)
					if c.Mask() != rule || c.Filter() != kind || c.Combine() != op || c.Blend() != mode {
						t.Fatalf("NewControl(%v, %v, %v, %v) decoded as (%v, %v, %v, %v)",
							rule, kind, op, mode, c.Mask(), c.Filter(), c.Combine(), c.Blend())
					}
					if c.IsBorder() {
						t.Fatalf("NewControl(%v, %v, %v, %v) is a border word", rule, kind, op, mode)
					}
				}
			}
		}
	}
}

func TestBorderControl(t *testing.T) {
	tests := []struct {
		rule  FillRule
		sides BorderSide
	}{
		{MaskNone, BorderLeft},
		{NonZero, BorderTop | BorderBottom},
		{EvenOdd, BorderAll},
	}
	for _, tt := range tests {
		c := BorderControl(tt.rule, tt.sides)
		if !c.IsBorder() {
			t.Errorf("BorderControl(%v, %v) not in border mode", tt.rule, tt.sides)
		}
		if c.BorderSides() != tt.sides {
			t.Errorf("BorderSides() = %v, want %v", c.BorderSides(), tt.sides)
		}
		if c.Blend() != BlendNormal {
			t.Errorf("border word blends with %v, want normal", c.Blend())
		}
		if c.Mask() != tt.rule {
			t.Errorf("Mask() = %v, want %v", c.Mask(), tt.rule)
		}
	}
	if NewControl(NonZero, filter.KindNone, CombineNone, BlendScreen).BorderSides() != 0 {
		t.Error("non-border word reports border sides")
	}
}

func TestBlendModeNames(t *testing.T) {
	tests := []struct {
		mode BlendMode
		name string
	}{
		{BlendNormal, "normal"},
		{BlendMultiply, "multiply"},
		{BlendColorDodge, "color-dodge"},
		{BlendLuminosity, "luminosity"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.name)
		}
		if m, ok := ParseBlendMode(tt.name); !ok || m != tt.mode {
			t.Errorf("ParseBlendMode(%q) = %v, %v", tt.name, m, ok)
		}
	}
	if _, ok := ParseBlendMode("plus-lighter"); ok {
		t.Error("ParseBlendMode accepted an unknown name")
	}
}

func TestCoordQuantization(t *testing.T) {
	tests := []struct {
		in    float32
		fixed int
	}{
		{0, 0},
		{0.5, 128},
		{12.25, 3136},
		{16, 4096},
		{-1, 0},
		{17, 4096},
		{1.0 / 512, 1},
	}
	for _, tt := range tests {
		c := CoordOf(tt.in)
		if c.Fixed() != tt.fixed {
			t.Errorf("CoordOf(%v).Fixed() = %d, want %d", tt.in, c.Fixed(), tt.fixed)
		}
	}
	if got := CoordOf(12.25).Float(); got != 12.25 {
		t.Errorf("CoordOf(12.25).Float() = %v", got)
	}
}
