package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/tilecomp"
)

// ErrCoverageSize is returned when a readback does not match the tiles
// requested.
var ErrCoverageSize = errors.New("gpu: coverage buffer size mismatch")

const (
	// fillWords is the number of u32 words per packed fill.
	fillWords = 3
	// paramsSize is the size of the uniform block in bytes.
	paramsSize = 16
	// maxGroupsX is the largest workgroup count per dispatch dimension.
	maxGroupsX = 65535
	// statusSize is the size of the status buffer in bytes.
	statusSize = 4
	// statusFillCycle is set in the status word when a tile walk overran.
	statusFillCycle = 1
)

// packPoint stores a tile-local point as two 16-bit fixed values, x low.
func packPoint(p tilecomp.Point) uint32 {
	return uint32(p.X.Fixed()) | uint32(p.Y.Fixed())<<16
}

// PackFills serializes the used part of the pass arena, three words per
// fill. An empty arena packs to one zero fill so the buffer is never empty.
func PackFills(pass *tilecomp.RenderPass) []byte {
	fills := pass.Fills()
	n := max(len(fills), 1)
	out := make([]byte, n*fillWords*4)
	for i, f := range fills {
		w := out[i*fillWords*4:]
		binary.LittleEndian.PutUint32(w[0:], packPoint(f.Segment.From))
		binary.LittleEndian.PutUint32(w[4:], packPoint(f.Segment.To))
		binary.LittleEndian.PutUint32(w[8:], uint32(f.Next))
	}
	return out
}

// PackHeads serializes the head of every mask tile.
func PackHeads(pass *tilecomp.RenderPass) []byte {
	heads := pass.Heads()
	out := make([]byte, max(len(heads), 1)*4)
	if len(heads) == 0 {
		binary.LittleEndian.PutUint32(out, uint32(tilecomp.NoFill))
	}
	for i, h := range heads {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(h))
	}
	return out
}

// PackTiles serializes the list of tiles to resolve.
func PackTiles(tiles []tilecomp.TileIndex) []byte {
	out := make([]byte, max(len(tiles), 1)*4)
	for i, t := range tiles {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(t))
	}
	return out
}

// PackFloats serializes a float32 slice, used for the area table.
func PackFloats(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// dispatchSize returns the workgroup grid for n tiles.
func dispatchSize(n int) (x, y uint32) {
	if n <= 0 {
		return 0, 0
	}
	x = uint32(min(n, maxGroupsX))
	y = uint32((n + maxGroupsX - 1) / maxGroupsX)
	return x, y
}

// packParams builds the uniform block.
func packParams(tiles, fills int, groupsX uint32) []byte {
	out := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(out[0:], uint32(tiles))
	binary.LittleEndian.PutUint32(out[4:], uint32(fills))
	binary.LittleEndian.PutUint32(out[8:], groupsX)
	return out
}

// UnpackCoverage copies a coverage readback into out, one tile per entry.
func UnpackCoverage(b []byte, out [][tilecomp.TilePixels]float32) error {
	if want := len(out) * tilecomp.TilePixels * 4; len(b) < want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrCoverageSize, len(b), want)
	}
	for t := range out {
		for i := range out[t] {
			off := (t*tilecomp.TilePixels + i) * 4
			out[t][i] = math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
		}
	}
	return nil
}

// CheckLists walks the packed fill list of every tile with the bound the
// resolve shader uses: a link outside the first count fills, or more than
// count steps, fails with tilecomp.ErrFillCycle.
func CheckLists(fills, heads []byte, count int) error {
	if len(fills) < count*fillWords*4 {
		return fmt.Errorf("%w: %d fills in %d bytes", tilecomp.ErrFillCycle, count, len(fills))
	}
	for tile := 0; tile+4 <= len(heads); tile += 4 {
		idx := binary.LittleEndian.Uint32(heads[tile:])
		for steps := 0; idx != uint32(tilecomp.NoFill); steps++ {
			if int(idx) >= count || steps >= count {
				return fmt.Errorf("%w: tile %d at fill %d", tilecomp.ErrFillCycle, tile/4, idx)
			}
			idx = binary.LittleEndian.Uint32(fills[int(idx)*fillWords*4+8:])
		}
	}
	return nil
}

// statusError maps the status word read back after a dispatch to an error.
func statusError(b []byte) error {
	if len(b) < statusSize {
		return fmt.Errorf("%w: status is %d bytes", ErrCoverageSize, len(b))
	}
	if binary.LittleEndian.Uint32(b)&statusFillCycle != 0 {
		return fmt.Errorf("gpu: tile walk: %w", tilecomp.ErrFillCycle)
	}
	return nil
}
