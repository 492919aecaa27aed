//go:build !nogpu

package gpu

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/tilecomp"
)

// openNoop opens a noop device for pipeline tests.
func openNoop(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	device, queue, release, err := open(&noop.API{})
	if err != nil {
		t.Fatalf("open noop device: %v", err)
	}
	t.Cleanup(release)
	return device, queue
}

// skipUnsupported skips when the shader compiler reports a known gap.
func skipUnsupported(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	for _, s := range []string{"not yet implemented", "not supported", "lowering error"} {
		if strings.Contains(msg, s) {
			t.Skipf("Skipping: naga limitation: %v", err)
		}
	}
}

func TestCompileShader(t *testing.T) {
	if resolveShaderWGSL == "" {
		t.Fatal("resolve shader source is empty")
	}
	words, err := CompileShader()
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("CompileShader: %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Errorf("SPIR-V magic missing, got %d words", len(words))
	}
}

func TestNewResolverRequiresDevice(t *testing.T) {
	if _, err := NewResolver(nil, nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("err = %v, want ErrNoDevice", err)
	}
}

func newNoopResolver(t *testing.T) *Resolver {
	t.Helper()
	device, queue := openNoop(t)
	r, err := NewResolver(device, queue)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("NewResolver: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func TestResolverPipeline(t *testing.T) {
	r := newNoopResolver(t)
	if r.pipeline == nil || r.bindLayout == nil || r.lut == nil {
		t.Fatal("pipeline resources not created")
	}
	if want := uint64(len(PackFloats(make([]float32, 257*257)))); r.lutSize != want {
		t.Errorf("lut size = %d, want %d", r.lutSize, want)
	}
}

func TestResolverValidation(t *testing.T) {
	r := newNoopResolver(t)
	pass := tilecomp.NewRenderPass(2, 4)

	if err := r.ResolveMasks(pass, make([][tilecomp.TilePixels]float32, 1)); !errors.Is(err, ErrCoverageSize) {
		t.Errorf("mismatched outputs err = %v", err)
	}
	empty := tilecomp.NewRenderPass(0, 0)
	if err := r.ResolveMasks(empty, nil); err != nil {
		t.Errorf("empty pass err = %v", err)
	}
	out := make([][tilecomp.TilePixels]float32, 1)
	if err := r.Resolve(pass, []tilecomp.TileIndex{5}, out); !errors.Is(err, tilecomp.ErrTileOutOfRange) {
		t.Errorf("out of range err = %v", err)
	}
}

func TestResolverDispatch(t *testing.T) {
	r := newNoopResolver(t)
	pass := tilecomp.NewRenderPass(1, 4)
	if _, err := pass.Push(0, tilecomp.Seg(4, 16, 4, 0)); err != nil {
		t.Fatal(err)
	}
	// The noop device does not execute shaders; only the submission and
	// readback path is checked here.
	out := make([][tilecomp.TilePixels]float32, 1)
	if err := r.ResolveMasks(pass, out); err != nil {
		t.Fatalf("ResolveMasks: %v", err)
	}
}

func TestResolverFillCycle(t *testing.T) {
	r := newNoopResolver(t)
	pass := cyclicPass(t)
	out := make([][tilecomp.TilePixels]float32, 1)
	if err := r.ResolveMasks(pass, out); !errors.Is(err, tilecomp.ErrFillCycle) {
		t.Errorf("cyclic list err = %v, want ErrFillCycle", err)
	}
}

// stalledQueue never reports a completed submission.
type stalledQueue struct{ hal.Queue }

func (stalledQueue) PollCompleted() uint64 { return 0 }

func TestWaitSubmission(t *testing.T) {
	_, queue := openNoop(t)
	index, err := queue.Submit(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := waitSubmission(queue, index, time.Second); err != nil {
		t.Errorf("completed submission err = %v", err)
	}

	err = waitSubmission(stalledQueue{}, 1, time.Millisecond)
	if !errors.Is(err, ErrDispatchTimeout) {
		t.Fatalf("stalled submission err = %v, want ErrDispatchTimeout", err)
	}
	if strings.Contains(err.Error(), "%!") {
		t.Errorf("malformed error message %q", err)
	}
}

func TestResolverDestroyTwice(t *testing.T) {
	r := newNoopResolver(t)
	r.Destroy()
	r.Destroy()
	pass := tilecomp.NewRenderPass(1, 1)
	if err := r.ResolveMasks(pass, make([][tilecomp.TilePixels]float32, 1)); !errors.Is(err, ErrNoDevice) {
		t.Errorf("destroyed resolver err = %v, want ErrNoDevice", err)
	}
}
