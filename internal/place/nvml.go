package place

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// ErrNVMLUnavailable is returned when libnvidia-ml cannot be loaded,
// typically on hosts without an NVIDIA driver.
var ErrNVMLUnavailable = errors.New("nvml library not found")

// NVMLCounter counts devices through the NVIDIA management library.
type NVMLCounter struct {
	lib nvml.Interface
}

// NewNVMLCounter returns a counter backed by the system libnvidia-ml.
func NewNVMLCounter() *NVMLCounter {
	return NewNVMLCounterWithInterface(nvml.New())
}

// NewNVMLCounterWithInterface returns a counter using lib.
func NewNVMLCounterWithInterface(lib nvml.Interface) *NVMLCounter {
	return &NVMLCounter{lib: lib}
}

// DeviceCount initialises NVML, reads the device count and shuts it down.
func (c *NVMLCounter) DeviceCount() (n int, err error) {
	ret := c.lib.Init()
	if ret == nvml.ERROR_LIBRARY_NOT_FOUND {
		return 0, ErrNVMLUnavailable
	}
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("unable to initialize NVML: %v", nvml.ErrorString(ret))
	}
	defer func() {
		if ret := c.lib.Shutdown(); ret != nvml.SUCCESS && err == nil {
			err = fmt.Errorf("unable to shutdown NVML: %v", nvml.ErrorString(ret))
		}
	}()

	count, ret := c.lib.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("unable to get device count: %v", nvml.ErrorString(ret))
	}
	return count, nil
}
