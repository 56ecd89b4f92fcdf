package place_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graph4kg/place"
)

func TestCUDAPlaces(t *testing.T) {
	t.Setenv(place.EnvSelectedGPUs, "")

	ids, err := place.CUDAPlaces(place.StaticCounter(3))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)

	// The selection is now pinned for later calls.
	ids, err = place.CUDAPlaces(place.StaticCounter(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)
	assert.Equal(t, "gpu:2", place.Places(ids)[2].String())
}

func TestParseDeviceIDs(t *testing.T) {
	ids, err := place.ParseDeviceIDs("4,0")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 0}, ids)
	assert.Equal(t, "4,0", place.FormatDeviceIDs(ids))

	_, err = place.ParseDeviceIDs("4,")
	assert.Error(t, err)
}
