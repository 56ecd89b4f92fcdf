package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/born-ml/graph4kg/internal/tensor"
	"go.uber.org/multierr"
)

// File is a fully decoded SafeTensors file.
type File struct {
	metadata map[string]string
	tensors  map[string]*tensor.RawTensor
}

// ReadSafeTensors reads the SafeTensors file at path, placing tensors on device.
func ReadSafeTensors(path string, device tensor.Device) (f *File, err error) {
	//nolint:gosec // G304: checkpoint path is chosen by the user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err = decode(bufio.NewReader(file), device, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// DecodeSafeTensors decodes a SafeTensors stream. Offsets are validated and
// the data checksum is verified when the metadata carries one.
func DecodeSafeTensors(r io.Reader, device tensor.Device) (*File, error) {
	return decode(r, device, -1)
}

// decode reads a SafeTensors stream. A non-negative size is the total
// stream length and bounds the data section before anything is read.
func decode(r io.Reader, device tensor.Device, size int64) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	f := &File{tensors: make(map[string]*tensor.RawTensor, len(rawMap))}
	if metaRaw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(metaRaw, &f.metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
		delete(rawMap, metadataKey)
	}

	infos := make(map[string]SafeTensorHeader, len(rawMap))
	spans := make([]span, 0, len(rawMap))
	var dataSize int64
	for name, raw := range rawMap {
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}
		var info SafeTensorHeader
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tensor %s: %w", name, err)
		}
		infos[name] = info
		spans = append(spans, span{Name: name, Offset: info.DataOffsets[0], Size: info.DataOffsets[1] - info.DataOffsets[0]})
		dataSize = max(dataSize, info.DataOffsets[1])
	}
	if err := validateSpans(spans, dataSize); err != nil {
		return nil, err
	}

	if size >= 0 && dataSize > size-8-int64(headerSize) {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Details: fmt.Sprintf("data section of %d bytes exceeds file size %d", dataSize, size),
		}
	}

	data, err := readData(r, dataSize)
	if err != nil {
		return nil, err
	}
	if sum, ok := f.metadata[ChecksumKey]; ok {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, err
		}
	}

	for name, info := range infos {
		raw, err := decodeTensor(name, info, data, device)
		if err != nil {
			return nil, err
		}
		f.tensors[name] = raw
	}
	return f, nil
}

// readData reads exactly n bytes, growing the buffer only as bytes arrive
// so a header claiming more data than the stream holds fails cleanly.
func readData(r io.Reader, n int64) ([]byte, error) {
	if n > MaxDataSize {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Details: fmt.Sprintf("data section of %d bytes exceeds max %d", n, int64(MaxDataSize)),
		}
	}
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if int64(len(data)) != n {
		return nil, &ValidationError{
			Type:    "out_of_bounds",
			Details: fmt.Sprintf("header needs %d data bytes, stream has %d", n, len(data)),
		}
	}
	return data, nil
}

func decodeTensor(name string, info SafeTensorHeader, data []byte, device tensor.Device) (*tensor.RawTensor, error) {
	dtype, err := safeTensorsToDType(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	shape := make(tensor.Shape, len(info.Shape))
	for i, dim := range info.Shape {
		shape[i] = int(dim)
	}
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", name, err)
	}

	chunk := data[info.DataOffsets[0]:info.DataOffsets[1]]
	if len(chunk) != raw.ByteSize() {
		return nil, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %v needs %d bytes, header gives %d", shape, raw.ByteSize(), len(chunk)),
		}
	}
	copy(raw.Data(), chunk)
	return raw, nil
}

// Metadata returns the header metadata, including the checksum entry.
func (f *File) Metadata() map[string]string {
	return f.metadata
}

// TensorNames returns the tensor names in sorted order.
func (f *File) TensorNames() []string {
	return slices.Sorted(maps.Keys(f.tensors))
}

// Tensor returns the named tensor.
func (f *File) Tensor(name string) (*tensor.RawTensor, error) {
	raw, ok := f.tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
	}
	return raw, nil
}
