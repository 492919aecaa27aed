// Package gpu resolves mask tile coverage with a compute shader.
//
// A Resolver owns a wgpu/hal compute pipeline built from an embedded WGSL
// shader compiled to SPIR-V by naga. It implements tilecomp.MaskResolver, so
// an engine created with tilecomp.WithMaskResolver bins segments and
// composites on the CPU while the per-pixel area accumulation runs on the
// device:
//
//	device, queue, release, err := gpu.OpenDevice()
//	if err != nil {
//		return err
//	}
//	defer release()
//	r, err := gpu.NewResolver(device, queue)
//	if err != nil {
//		return err
//	}
//	defer r.Destroy()
//	e := tilecomp.NewEngine(tilecomp.WithMaskResolver(r))
//
// Build with the nogpu tag to leave out the device code; the buffer packing
// helpers remain available.
package gpu
