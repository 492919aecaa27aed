// Package scene turns vector paths into tilecomp batches.
//
// A Builder accumulates fills in paint order. Each fill is flattened,
// clipped to the surface and cut along tile boundaries; the pieces are
// tagged with mask tiles from a layout covering the path's bounding box, and
// one draw is emitted per tile of that layout. Build returns the batch ready
// for tilecomp.Engine.Render.
//
//	b := scene.NewBuilder(256, 256)
//	b.Fill(scene.NewPath().Circle(128, 128, 100), tilecomp.NonZero, scene.Solid(red))
//	b.PushClip(scene.NewPath().Rectangle(0, 0, 128, 256), tilecomp.NonZero)
//	b.Fill(scene.NewPath().Rectangle(64, 64, 128, 128), tilecomp.NonZero, scene.Solid(blue))
//	b.PopClip()
//	batch, err := b.Build()
package scene
