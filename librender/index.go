package librender

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIndexTooLarge = errors.New("index does not fit the index type")

// IndexType is the width of one element buffer entry in bytes.
type IndexType uint8

const (
	IndexUint8  IndexType = 1
	IndexUint16 IndexType = 2
	IndexUint32 IndexType = 4
)

func ParseIndexType(s string) (IndexType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uint8", "u8", "byte":
		return IndexUint8, nil
	case "uint16", "u16", "short":
		return IndexUint16, nil
	case "uint32", "u32", "int":
		return IndexUint32, nil
	}
	return 0, fmt.Errorf("%q is not a valid index type", s)
}

// ResolveIndexType parses s like ParseIndexType. "auto" picks the narrowest type
// able to address vertexCount vertices.
func ResolveIndexType(s string, vertexCount int) (IndexType, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return IndexTypeFor(vertexCount), nil
	}
	return ParseIndexType(s)
}

// IndexTypeFor returns the narrowest index type able to address vertexCount vertices.
func IndexTypeFor(vertexCount int) IndexType {
	switch {
	case vertexCount <= 1<<8:
		return IndexUint8
	case vertexCount <= 1<<16:
		return IndexUint16
	}
	return IndexUint32
}

func (t IndexType) Size() int {
	return int(t)
}

// Max returns the largest index value representable by t.
func (t IndexType) Max() uint32 {
	switch t {
	case IndexUint8:
		return 0xff
	case IndexUint16:
		return 0xffff
	}
	return 0xffff_ffff
}

func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	}
	return fmt.Sprintf("IndexType(%d)", uint8(t))
}

// Pack converts indices into a slice of the matching Go integer type
// ([]uint8, []uint16 or []uint32) suitable for a buffer upload.
func (t IndexType) Pack(indices []uint32) (any, error) {
	max := t.Max()
	for i, idx := range indices {
		if idx > max {
			return nil, fmt.Errorf("indices[%d] = %d exceeds %v: %w", i, idx, t, ErrIndexTooLarge)
		}
	}

	switch t {
	case IndexUint8:
		packed := make([]uint8, len(indices))
		for i, idx := range indices {
			packed[i] = uint8(idx)
		}
		return packed, nil
	case IndexUint16:
		packed := make([]uint16, len(indices))
		for i, idx := range indices {
			packed[i] = uint16(idx)
		}
		return packed, nil
	case IndexUint32:
		packed := make([]uint32, len(indices))
		copy(packed, indices)
		return packed, nil
	}
	return nil, fmt.Errorf("unsupported index type %v", t)
}
