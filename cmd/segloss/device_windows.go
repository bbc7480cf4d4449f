//go:build windows

package main

import (
	"errors"
	"fmt"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/backend/webgpu"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/segloss/internal/logging"
)

const deviceNames = "cpu or webgpu"

// openDevice returns the backend for a device name and a release func.
func openDevice(name string) (tensor.Backend, func(), error) {
	switch name {
	case "", "cpu":
		return cpu.New(), func() {}, nil
	case "webgpu":
		if !webgpu.IsAvailable() {
			return nil, nil, errors.New("webgpu: no adapter available, ensure wgpu-native is installed")
		}
		b, err := webgpu.New()
		if err != nil {
			return nil, nil, fmt.Errorf("webgpu: %w", err)
		}
		logging.Logger().Info("using GPU backend", "name", b.Name())
		return b, b.Release, nil
	default:
		return nil, nil, fmt.Errorf("unknown device %q: this build supports %s", name, deviceNames)
	}
}
