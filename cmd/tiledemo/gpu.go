//go:build !nogpu

package main

import (
	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/gpu"
)

func openResolver() (tilecomp.MaskResolver, func(), error) {
	device, queue, release, err := gpu.OpenDevice()
	if err != nil {
		return nil, nil, err
	}
	r, err := gpu.NewResolver(device, queue)
	if err != nil {
		release()
		return nil, nil, err
	}
	return r, func() {
		r.Destroy()
		release()
	}, nil
}
