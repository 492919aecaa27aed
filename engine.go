package tilecomp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/internal/parallel"
)

// binChunk is the number of segments binned per work item.
const binChunk = 256

// Engine renders batches onto surfaces. The stages of a render run in order
// with a barrier between them: bin, propagate backdrops, resolve coverage,
// composite. Work inside a stage is spread over a worker pool.
//
// An Engine renders one batch at a time; concurrent Render calls are
// serialized.
type Engine struct {
	mu     sync.Mutex
	pool   *parallel.WorkerPool
	opts   engineOptions
	closed bool

	pass     *RenderPass
	coverage [][TilePixels]float32
	states   []tileState
}

// NewEngine creates an engine and starts its workers.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		pool: parallel.NewWorkerPool(o.workers),
		opts: o,
		pass: NewRenderPass(0, 0),
	}
}

// Close stops the workers. Render fails with ErrEngineClosed afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.pool.Close()
}

// Render draws batch onto dst.
//
// A render that fails with ErrTileOutOfRange, ErrArenaFull or ErrFillCycle
// is aborted before compositing and leaves dst untouched. Cancellation of
// ctx is checked between stages.
func (e *Engine) Render(ctx context.Context, batch *Batch, dst *Surface) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if dst == nil {
		return ErrNilSurface
	}
	if batch == nil {
		return fmt.Errorf("%w: nil batch", ErrInvalidBatch)
	}
	if err := batch.validate(dst.TilesX(), dst.TilesY()); err != nil {
		return err
	}

	log := Logger()
	if log.Enabled(ctx, slog.LevelWarn) {
		warnMissingSources(log, batch, e.opts.gamma)
	}
	capacity := max(2*len(batch.Segments), e.opts.arenaCapacity)
	e.pass.Reset(batch.MaskTiles, capacity, batch.Masks)

	if err := e.bin(batch.Segments); err != nil {
		log.Error("tilecomp: binning failed", "err", err)
		return fmt.Errorf("tilecomp: bin: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.pass.PropagateBackdrops()

	if err := e.resolve(); err != nil {
		log.Error("tilecomp: coverage resolve failed", "err", err)
		return fmt.Errorf("tilecomp: resolve: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	written := e.composite(batch, dst)

	log.Debug("tilecomp: render",
		slog.Int("segments", len(batch.Segments)),
		slog.Int("fills", e.pass.Len()),
		slog.Int("mask_tiles", batch.MaskTiles),
		slog.Int("draws", len(batch.Draws)),
		slog.Int("tiles_written", written))
	return nil
}

// firstError keeps the first error reported by concurrent work.
type firstError struct {
	once sync.Once
	err  error
}

func (f *firstError) set(err error) {
	if err != nil {
		f.once.Do(func() { f.err = err })
	}
}

func (e *Engine) bin(segments []TiledSegment) error {
	var fe firstError
	chunks := (len(segments) + binChunk - 1) / binChunk
	e.pool.ForEach(chunks, func(i int) {
		start := i * binChunk
		end := min(start+binChunk, len(segments))
		if err := e.pass.Bin(segments[start:end]); err != nil {
			fe.set(fmt.Errorf("chunk at %d: %w", start, err))
		}
	})
	return fe.err
}

func (e *Engine) resolve() error {
	n := e.pass.Tiles()
	if cap(e.coverage) < n {
		e.coverage = make([][TilePixels]float32, n)
	}
	e.coverage = e.coverage[:n]

	if r := e.opts.resolver; r != nil {
		return r.ResolveMasks(e.pass, e.coverage)
	}

	var fe firstError
	e.pool.ForEach(n, func(i int) {
		fe.set(e.pass.ResolveTile(TileIndex(i), &e.coverage[i]))
	})
	return fe.err
}

func (e *Engine) composite(batch *Batch, dst *Surface) int {
	tilesX, tilesY := dst.TilesX(), dst.TilesY()
	n := tilesX * tilesY
	if cap(e.states) < n {
		e.states = make([]tileState, n)
	}
	e.states = e.states[:n]
	clear(e.states)

	// Group draws per output tile, keeping submission order.
	perTile := make(map[int][]int32)
	var order []int
	for i := range batch.Draws {
		o := batch.Draws[i].TileOrigin
		key := int(o[1])*tilesX + int(o[0])
		if _, ok := perTile[key]; !ok {
			order = append(order, key)
		}
		perTile[key] = append(perTile[key], int32(i))
	}

	c := &compositor{
		batch:    batch,
		pass:     e.pass,
		coverage: e.coverage,
		env: filter.Env{
			Texture: batch.Texture,
			Atlas:   batch.Atlas,
			Gamma:   e.opts.gamma,
		},
		dst:    dst,
		states: e.states,
		tilesX: tilesX,
	}

	var written atomic.Int32
	e.pool.ForEach(len(order), func(i int) {
		key := order[i]
		if c.tile(key%tilesX, key/tilesX, perTile[key]) {
			written.Add(1)
		}
	})
	return int(written.Load())
}

// warnMissingSources logs the first draw whose filter samples a source the
// batch does not carry. Such draws sample transparent, and gamma-corrected
// text without a gamma table renders uncorrected.
func warnMissingSources(log *slog.Logger, b *Batch, gamma *filter.GammaLUT) {
	for i := range b.Draws {
		d := &b.Draws[i]
		if d.Control.IsBorder() || d.Control.Combine() == CombineNone {
			continue
		}
		f := &b.Metadata[d.Color].Filter
		switch kind := f.Kind; kind {
		case filter.KindText:
			if b.Atlas == nil {
				log.Warn("tilecomp: text draw without atlas", "draw", i)
				return
			}
			if f.Text.GammaCorrect && gamma == nil {
				log.Warn("tilecomp: gamma-corrected text without gamma table", "draw", i)
				return
			}
		case filter.KindNone, filter.KindBlur:
			if b.Texture == nil {
				log.Warn("tilecomp: texture draw without texture", "draw", i, "filter", kind.String())
				return
			}
		}
	}
}

// IsFatal reports whether err aborted a render pass.
func IsFatal(err error) bool {
	return errors.Is(err, ErrTileOutOfRange) || errors.Is(err, ErrFillCycle) || errors.Is(err, ErrArenaFull)
}
