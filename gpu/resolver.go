//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/internal/arealut"
)

//go:embed shaders/resolve.wgsl
var resolveShaderWGSL string

// ErrNoDevice is returned by NewResolver without a device or queue.
var ErrNoDevice = errors.New("gpu: device and queue are required")

// ErrDispatchTimeout is returned when a dispatch does not complete within
// dispatchTimeout.
var ErrDispatchTimeout = errors.New("gpu: dispatch timed out")

const (
	// dispatchTimeout bounds the wait for one dispatch.
	dispatchTimeout = 5 * time.Second
	// pollInterval is the sleep between completion polls.
	pollInterval = 100 * time.Microsecond
)

// Resolver computes mask tile coverage on a device. It is safe for
// concurrent use; dispatches are serialized.
type Resolver struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	lut     hal.Buffer
	lutSize uint64
}

var _ tilecomp.MaskResolver = (*Resolver)(nil)

// NewResolver compiles the resolve shader and creates its pipeline on
// device. The area table is uploaded once.
func NewResolver(device hal.Device, queue hal.Queue) (*Resolver, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	r := &Resolver{device: device, queue: queue}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	slogger().Info("gpu: resolve pipeline ready", "lut_bytes", r.lutSize)
	return r, nil
}

// CompileShader compiles the resolve shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirv, err := naga.Compile(resolveShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile resolve shader: %w", err)
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words, nil
}

func (r *Resolver) init() error {
	words, err := CompileShader()
	if err != nil {
		return err
	}
	r.shader, err = r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "tilecomp_resolve",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return fmt.Errorf("gpu: create shader module: %w", err)
	}

	r.bindLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "tilecomp_resolve_layout",
		Entries: layoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}

	r.pipeLayout, err = r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "tilecomp_resolve_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	r.pipeline, err = r.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "tilecomp_resolve_pipeline",
		Layout:  r.pipeLayout,
		Compute: hal.ComputeState{Module: r.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("gpu: create compute pipeline: %w", err)
	}

	lut := PackFloats(arealut.Table())
	r.lutSize = uint64(len(lut))
	r.lut, err = r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "tilecomp_area_lut",
		Size:  r.lutSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create area table buffer: %w", err)
	}
	if err := r.queue.WriteBuffer(r.lut, 0, lut); err != nil {
		return fmt.Errorf("gpu: upload area table: %w", err)
	}
	return nil
}

// layoutEntries matches the @binding annotations of resolve.wgsl.
func layoutEntries() []gputypes.BindGroupLayoutEntry {
	storageRO := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		}
	}
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: paramsSize,
			},
		},
		storageRO(1),
		storageRO(2),
		storageRO(3),
		{
			Binding:    4,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		},
		storageRO(5),
		{
			Binding:    6,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		},
	}
}

// Destroy releases the pipeline. The device is not owned and stays open.
func (r *Resolver) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return
	}
	if r.lut != nil {
		r.device.DestroyBuffer(r.lut)
		r.lut = nil
	}
	if r.pipeline != nil {
		r.device.DestroyComputePipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// ResolveMasks implements tilecomp.MaskResolver by resolving every tile of
// pass in one dispatch.
func (r *Resolver) ResolveMasks(pass *tilecomp.RenderPass, out [][tilecomp.TilePixels]float32) error {
	n := pass.Tiles()
	if len(out) != n {
		return fmt.Errorf("%w: %d tiles, %d outputs", ErrCoverageSize, n, len(out))
	}
	if n == 0 {
		return nil
	}
	tiles := make([]tilecomp.TileIndex, n)
	for i := range tiles {
		tiles[i] = tilecomp.TileIndex(i)
	}
	return r.Resolve(pass, tiles, out)
}

// Resolve computes the raw coverage of tiles into out, which must have one
// entry per tile.
func (r *Resolver) Resolve(pass *tilecomp.RenderPass, tiles []tilecomp.TileIndex, out [][tilecomp.TilePixels]float32) error {
	if len(out) != len(tiles) {
		return fmt.Errorf("%w: %d tiles, %d outputs", ErrCoverageSize, len(tiles), len(out))
	}
	if len(tiles) == 0 {
		return nil
	}
	for _, t := range tiles {
		if int(t) >= pass.Tiles() {
			return fmt.Errorf("gpu: tile %d: %w", t, tilecomp.ErrTileOutOfRange)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipeline == nil {
		return ErrNoDevice
	}

	start := time.Now()
	groupsX, groupsY := dispatchSize(len(tiles))
	fills, heads := PackFills(pass), PackHeads(pass)
	if err := CheckLists(fills, heads, pass.Len()); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	inputs := [][]byte{
		packParams(len(tiles), pass.Len(), groupsX),
		fills,
		heads,
		PackTiles(tiles),
	}
	coverageSize := uint64(len(tiles) * tilecomp.TilePixels * 4)

	var bufs []hal.Buffer
	defer func() {
		for _, b := range bufs {
			r.device.DestroyBuffer(b)
		}
	}()
	create := func(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
		b, err := r.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
		if err != nil {
			return nil, fmt.Errorf("gpu: create %s buffer: %w", label, err)
		}
		bufs = append(bufs, b)
		return b, nil
	}
	upload := func(label string, b hal.Buffer, data []byte) error {
		if err := r.queue.WriteBuffer(b, 0, data); err != nil {
			return fmt.Errorf("gpu: upload %s: %w", label, err)
		}
		return nil
	}

	labels := [...]string{"params", "fills", "heads", "tiles"}
	entries := make([]gputypes.BindGroupEntry, 0, 7)
	for i, data := range inputs {
		usage := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
		if i == 0 {
			usage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
		}
		b, err := create(labels[i], uint64(len(data)), usage)
		if err != nil {
			return err
		}
		if err := upload(labels[i], b, data); err != nil {
			return err
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i),
			Resource: gputypes.BufferBinding{Buffer: b.NativeHandle(), Size: uint64(len(data))},
		})
	}
	coverage, err := create("coverage", coverageSize, gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc)
	if err != nil {
		return err
	}
	status, err := create("status", statusSize, gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if err := upload("status", status, make([]byte, statusSize)); err != nil {
		return err
	}
	// Coverage followed by the status word.
	stagingSize := coverageSize + statusSize
	staging, err := create("staging", stagingSize, gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	entries = append(entries,
		gputypes.BindGroupEntry{Binding: 4, Resource: gputypes.BufferBinding{Buffer: coverage.NativeHandle(), Size: coverageSize}},
		gputypes.BindGroupEntry{Binding: 5, Resource: gputypes.BufferBinding{Buffer: r.lut.NativeHandle(), Size: r.lutSize}},
		gputypes.BindGroupEntry{Binding: 6, Resource: gputypes.BufferBinding{Buffer: status.NativeHandle(), Size: statusSize}},
	)

	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "tilecomp_resolve_bind",
		Layout:  r.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(group)

	copies := []copyRegion{
		{src: coverage, size: coverageSize},
		{src: status, dst: coverageSize, size: statusSize},
	}
	if err := r.dispatch(group, groupsX, groupsY, staging, copies); err != nil {
		return err
	}

	readback, err := r.readback(staging, stagingSize)
	if err != nil {
		return err
	}
	if err := statusError(readback[coverageSize:]); err != nil {
		return err
	}
	if err := UnpackCoverage(readback[:coverageSize], out); err != nil {
		return err
	}
	slogger().Debug("gpu: resolved mask tiles",
		"tiles", len(tiles),
		"fills", pass.Len(),
		"elapsed", time.Since(start))
	return nil
}

// copyRegion is one buffer copied into staging at offset dst.
type copyRegion struct {
	src  hal.Buffer
	dst  uint64
	size uint64
}

// readback maps staging and copies its first size bytes out.
func (r *Resolver) readback(staging hal.Buffer, size uint64) ([]byte, error) {
	m, err := r.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gpu: map staging: %w", err)
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(m.Ptr), size))
	if err := r.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("gpu: unmap staging: %w", err)
	}
	return out, nil
}

// dispatch records and submits the compute pass and the copies to staging,
// then waits for completion.
func (r *Resolver) dispatch(group hal.BindGroup, groupsX, groupsY uint32, staging hal.Buffer, copies []copyRegion) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "tilecomp_resolve_encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tilecomp_resolve"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "tilecomp_resolve_pass"})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.Dispatch(groupsX, groupsY, 1)
	pass.End()

	for _, c := range copies {
		encoder.CopyBufferToBuffer(c.src, staging, []hal.BufferCopy{{DstOffset: c.dst, Size: c.size}})
	}
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmd)

	index, err := r.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	return waitSubmission(r.queue, index, dispatchTimeout)
}

// waitSubmission polls queue until submission index has completed.
func waitSubmission(queue hal.Queue, index uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrDispatchTimeout, index, timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}
