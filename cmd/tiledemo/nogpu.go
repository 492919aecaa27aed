//go:build nogpu

package main

import (
	"errors"

	"github.com/gogpu/tilecomp"
)

func openResolver() (tilecomp.MaskResolver, func(), error) {
	return nil, nil, errors.New("built with nogpu")
}
