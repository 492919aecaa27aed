// Package tilecomp is a tile-based analytic rasterizer and compositor for
// filled vector paths.
//
// The caller supplies a Batch: line segments already flattened from curves
// and tagged with the mask tile they belong to, a per-tile list of draw
// records, and a metadata table describing each paint. An Engine turns the
// batch into pixels on a Surface in four stages separated by barriers:
//
//  1. Binning pushes every segment onto its tile's fill list and derives the
//     winding carried in from tiles to the left.
//  2. Backdrop propagation prefix-sums the carried winding along tile rows.
//  3. Resolution walks each fill list and accumulates signed analytic
//     coverage using a precomputed area table.
//  4. Compositing walks each output tile's draws in submission order,
//     applies the mask, the color filter, the combine op and the blend mode,
//     and writes the tile once.
//
// Tiles are independent within a stage and run in parallel; draws within a
// tile run strictly in order because blending does not commute.
//
// Basic usage:
//
//	eng := tilecomp.NewEngine()
//	defer eng.Close()
//
//	dst := tilecomp.NewSurface(256, 256)
//	if err := eng.Render(ctx, batch, dst); err != nil {
//	    // the frame is not presentable
//	}
//	png.Encode(w, dst.Image())
//
// The scene package builds batches from polygons, and the glyph package
// builds atlases for the text filter.
package tilecomp
