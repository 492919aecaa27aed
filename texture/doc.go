// Package texture provides the sampled inputs of the color filter stage:
// premultiplied RGBA textures and single-channel alpha textures such as glyph
// atlases.
//
// Coordinates are in texel units with texel i centered at i+0.5. Sampling is
// bilinear with clamp-to-edge addressing, so a sample halfway between two
// texel centers returns their average. The blur filter relies on this to
// fetch two weighted taps with one sample.
package texture
