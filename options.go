package tilecomp

import (
	"runtime"

	"github.com/gogpu/tilecomp/filter"
)

// EngineOption configures an Engine during creation.
//
// Example:
//
//	e := tilecomp.NewEngine(
//	    tilecomp.WithWorkers(4),
//	    tilecomp.WithGammaLUT(filter.NewGammaLUT(2.2)),
//	)
type EngineOption func(*engineOptions)

type engineOptions struct {
	workers       int
	arenaCapacity int
	gamma         *filter.GammaLUT
	resolver      MaskResolver
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of goroutines used by each render stage.
// Values below 1 use GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithArenaCapacity sets a minimum fill arena size. The engine always
// reserves two fills per segment; a larger arena avoids reallocating
// between frames of varying size.
func WithArenaCapacity(n int) EngineOption {
	return func(o *engineOptions) {
		o.arenaCapacity = max(n, 0)
	}
}

// WithGammaLUT sets the gamma table used by text filters that request
// gamma correction. Without it such text renders uncorrected.
func WithGammaLUT(lut *filter.GammaLUT) EngineOption {
	return func(o *engineOptions) {
		o.gamma = lut
	}
}

// MaskResolver computes the raw coverage of every mask tile of a binned
// pass. out holds one entry per tile, indexed by TileIndex.
type MaskResolver interface {
	ResolveMasks(pass *RenderPass, out [][TilePixels]float32) error
}

// WithMaskResolver replaces the CPU coverage resolver, for example with a
// GPU compute pipeline. Backdrops and compositing stay on the CPU.
func WithMaskResolver(r MaskResolver) EngineOption {
	return func(o *engineOptions) {
		o.resolver = r
	}
}
