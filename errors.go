package tilecomp

import "errors"

// Fatal pass errors. A Render call that returns one of these (wrapped) did
// not produce a presentable frame.
var (
	// ErrTileOutOfRange reports a segment or draw that names a tile outside
	// the pass. Dropping it would corrupt a region of the output silently.
	ErrTileOutOfRange = errors.New("tilecomp: tile index out of range")

	// ErrFillCycle reports a fill list that does not terminate within the
	// number of fills in the arena, or a head that points outside it.
	ErrFillCycle = errors.New("tilecomp: fill list cycle or corrupted head")

	// ErrArenaFull reports more fills than the pass was sized for.
	ErrArenaFull = errors.New("tilecomp: fill arena exhausted")
)

// Input errors.
var (
	// ErrInvalidBatch reports inconsistent batch tables: a mask layout that
	// exceeds the mask tile count or a draw that references missing metadata.
	ErrInvalidBatch = errors.New("tilecomp: invalid batch")

	// ErrNilSurface is returned when Render is called without a destination.
	ErrNilSurface = errors.New("tilecomp: nil surface")

	// ErrEngineClosed is returned by Render after Close.
	ErrEngineClosed = errors.New("tilecomp: engine closed")
)
