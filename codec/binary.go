package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Int64Codec serializes an int64 as 8 little-endian bytes
type Int64Codec struct{}

// Int64 returns an Int64Codec
func Int64() Int64Codec {
	return Int64Codec{}
}

// Encode serializes an int64
func (Int64Codec) Encode(v int64) ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, uint64(v))
	return buff, nil
}

// Decode produces an int64 from serialized data
func (Int64Codec) Decode(buff []byte) (int64, error) {
	if err := checkWidth(buff, 8); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buff)), nil
}

// Uint64Codec serializes a uint64 as 8 little-endian bytes
type Uint64Codec struct{}

// Uint64 returns a Uint64Codec
func Uint64() Uint64Codec {
	return Uint64Codec{}
}

// Encode serializes a uint64
func (Uint64Codec) Encode(v uint64) ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, v)
	return buff, nil
}

// Decode produces a uint64 from serialized data
func (Uint64Codec) Decode(buff []byte) (uint64, error) {
	if err := checkWidth(buff, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buff), nil
}

// Float64Codec serializes a float64 as the 8 little-endian bytes of its IEEE 754 representation
type Float64Codec struct{}

// Float64 returns a Float64Codec
func Float64() Float64Codec {
	return Float64Codec{}
}

// Encode serializes a float64
func (Float64Codec) Encode(v float64) ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(v))
	return buff, nil
}

// Decode produces a float64 from serialized data
func (Float64Codec) Decode(buff []byte) (float64, error) {
	if err := checkWidth(buff, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buff)), nil
}

func checkWidth(buff []byte, width int) error {
	if len(buff) != width {
		return fmt.Errorf("Expected %d bytes, got %d", width, len(buff))
	}
	return nil
}
