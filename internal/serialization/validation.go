package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024       // 100MB
	MaxDataSize      = 64 * 1024 * 1024 * 1024 // 64GB
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// span is the byte range of one tensor inside the data section.
type span struct {
	Name   string
	Offset int64
	Size   int64
}

// validateSpans checks for overlapping ranges and out-of-bounds access.
func validateSpans(spans []span, dataSize int64) error {
	if len(spans) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(spans), MaxTensorCount),
		}
	}

	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, s := range sorted {
		if s.Offset < 0 || s.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  s.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", s.Offset, s.Size),
			}
		}
		if s.Offset+s.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  s.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", s.Offset, s.Size, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if s.Offset+s.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  s.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						s.Offset, s.Offset+s.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects names that are empty, too long, reserved or
// contain path separators or NUL bytes.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Type: "invalid_name", Details: "empty tensor name"}
	case name == metadataKey:
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "reserved for metadata"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case strings.Contains(name, ".."):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains '..'"}
	case strings.ContainsAny(name, "/\\"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains path separator (/ or \\)"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains null byte"}
	}
	return nil
}
