// Package filter implements the color filter stage of the tile compositor.
//
// A Filter is a tagged value: Kind selects exactly one of the radial
// gradient, blur or text payloads, and Apply dispatches on it. Filters run
// in texture space and know nothing about tiles: the compositor hands them a
// material-space point and an Env holding the batch's textures.
//
// Apply returns a straight (non-premultiplied) color so the compositor can
// run its combine operation against the draw's base color.
package filter
