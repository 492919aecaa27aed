//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrNoAdapter is returned by OpenDevice when no adapter is found.
var ErrNoAdapter = errors.New("gpu: no adapter available")

// OpenDevice opens a Vulkan device, preferring a discrete or integrated
// GPU. release destroys the device and instance.
func OpenDevice() (device hal.Device, queue hal.Queue, release func(), err error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: vulkan backend not registered", ErrNoAdapter)
	}
	return open(backend)
}

// instanceCreator is the part of a HAL backend used to open devices.
type instanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// open creates an instance on api and opens its preferred adapter.
func open(api instanceCreator) (hal.Device, hal.Queue, func(), error) {
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, ErrNoAdapter
	}
	selected := &adapters[0]
	for i := range adapters {
		t := adapters[i].Info.DeviceType
		if t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	opened, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("gpu: open device: %w", err)
	}
	slogger().Info("gpu: device opened", "adapter", selected.Info.Name)
	release := func() {
		opened.Device.Destroy()
		instance.Destroy()
	}
	return opened.Device, opened.Queue, release, nil
}
