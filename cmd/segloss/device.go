//go:build !windows

package main

import (
	"fmt"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
)

const deviceNames = "cpu"

// openDevice returns the backend for a device name and a release func.
func openDevice(name string) (tensor.Backend, func(), error) {
	switch name {
	case "", "cpu":
		return cpu.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown device %q: this build supports %s", name, deviceNames)
	}
}
