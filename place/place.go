// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package place selects the CUDA devices a process runs on from the
// FLAGS_selected_gpus environment variable.
//
// Example:
//
//	ids, err := place.CUDAPlaces(place.NewNVMLCounter())
//	if err != nil {
//	    return err
//	}
//	for _, p := range place.Places(ids) {
//	    fmt.Println(p) // gpu:0, gpu:1, ...
//	}
package place

import (
	"github.com/born-ml/graph4kg/internal/place"
)

// EnvSelectedGPUs is the environment variable holding the selected ids.
const EnvSelectedGPUs = place.EnvSelectedGPUs

// ErrNVMLUnavailable is returned when libnvidia-ml cannot be loaded.
var ErrNVMLUnavailable = place.ErrNVMLUnavailable

// DeviceCounter reports the number of visible CUDA devices.
type DeviceCounter = place.DeviceCounter

// StaticCounter is a DeviceCounter with a fixed count.
type StaticCounter = place.StaticCounter

// NVMLCounter counts devices through NVML.
type NVMLCounter = place.NVMLCounter

// Selector resolves device ids from an injectable environment.
type Selector = place.Selector

// Place is a device a computation runs on.
type Place = place.Place

// Kind is the device family of a Place.
type Kind = place.Kind

// Device kinds.
const (
	CPU Kind = place.CPU
	GPU Kind = place.GPU
)

// NewNVMLCounter returns a counter backed by the system libnvidia-ml.
func NewNVMLCounter() *NVMLCounter {
	return place.NewNVMLCounter()
}

// CUDAPlaces returns the device ids selected by FLAGS_selected_gpus. When
// the variable is unset or empty, all ids reported by counter are returned
// and written back to the variable.
func CUDAPlaces(counter DeviceCounter) ([]int, error) {
	return place.CUDAPlaces(counter)
}

// ParseDeviceIDs parses a comma separated id list.
func ParseDeviceIDs(value string) ([]int, error) {
	return place.ParseDeviceIDs(value)
}

// FormatDeviceIDs joins ids with commas.
func FormatDeviceIDs(ids []int) string {
	return place.FormatDeviceIDs(ids)
}

// Places converts device ids to places; no ids yield a single CPU place.
func Places(ids []int) []Place {
	return place.Places(ids)
}
