// Package place selects the CUDA devices a training process runs on.
//
// The selection is driven by the FLAGS_selected_gpus environment variable,
// a comma separated list of device ids. When it is unset or empty every
// visible device is selected and the variable is written back, so that
// child processes and later calls observe the same list.
package place

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// EnvSelectedGPUs is the environment variable holding the selected ids.
const EnvSelectedGPUs = "FLAGS_selected_gpus"

// DeviceCounter reports the number of visible CUDA devices.
type DeviceCounter interface {
	DeviceCount() (int, error)
}

// StaticCounter is a DeviceCounter with a fixed count.
type StaticCounter int

// DeviceCount implements DeviceCounter.
func (n StaticCounter) DeviceCount() (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("invalid static device count %d", int(n))
	}
	return int(n), nil
}

// Selector resolves CUDA device ids from an environment.
// LookupEnv and Setenv default to the process environment.
type Selector struct {
	Counter   DeviceCounter
	LookupEnv func(key string) (string, bool)
	Setenv    func(key, value string) error
	Logger    *zap.Logger
}

// NewSelector returns a Selector over the process environment.
func NewSelector(counter DeviceCounter, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		Counter:   counter,
		LookupEnv: os.LookupEnv,
		Setenv:    os.Setenv,
		Logger:    logger,
	}
}

// CUDAPlaces returns the selected device ids.
//
// A non-empty FLAGS_selected_gpus is parsed and returned as is. Otherwise
// the ids [0, n) of all n devices are returned and stored in the variable.
func (s *Selector) CUDAPlaces() ([]int, error) {
	if value, ok := s.LookupEnv(EnvSelectedGPUs); ok && value != "" {
		ids, err := ParseDeviceIDs(value)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", EnvSelectedGPUs, value, err)
		}
		s.Logger.Debug("using selected gpus from environment", zap.Ints("ids", ids))
		return ids, nil
	}

	if s.Counter == nil {
		return nil, fmt.Errorf("%s is unset and no device counter is configured", EnvSelectedGPUs)
	}
	n, err := s.Counter.DeviceCount()
	if err != nil {
		return nil, fmt.Errorf("count cuda devices: %w", err)
	}

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	joined := FormatDeviceIDs(ids)
	if err := s.Setenv(EnvSelectedGPUs, joined); err != nil {
		return nil, fmt.Errorf("set %s: %w", EnvSelectedGPUs, err)
	}
	s.Logger.Debug("selected all visible gpus", zap.Int("count", n), zap.String(EnvSelectedGPUs, joined))
	return ids, nil
}

// CUDAPlaces resolves device ids against the process environment.
func CUDAPlaces(counter DeviceCounter) ([]int, error) {
	return NewSelector(counter, nil).CUDAPlaces()
}

// ParseDeviceIDs parses a comma separated id list such as "0, 2,3".
// Every element must be a base-10 integer.
func ParseDeviceIDs(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid device id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FormatDeviceIDs joins ids with commas; no ids give "".
func FormatDeviceIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Kind is the device family of a Place.
type Kind int

const (
	// CPU is host execution.
	CPU Kind = iota
	// GPU is a CUDA device.
	GPU
)

// Place is a device a computation runs on.
type Place struct {
	Kind Kind
	ID   int
}

// String returns "cpu" or "gpu:<id>".
func (p Place) String() string {
	if p.Kind == GPU {
		return "gpu:" + strconv.Itoa(p.ID)
	}
	return "cpu"
}

// Places converts device ids to GPU places. No ids yield a single CPU place.
func Places(ids []int) []Place {
	if len(ids) == 0 {
		return []Place{{Kind: CPU}}
	}
	places := make([]Place, len(ids))
	for i, id := range ids {
		places[i] = Place{Kind: GPU, ID: id}
	}
	return places
}
