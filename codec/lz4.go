package codec

import (
	"bytes"
	"fmt"
	"io/ioutil"

	"github.com/pierrec/lz4"
)

// Inner is the Codec wrapped by an LZ4Codec
type Inner[R any] interface {
	Encode(r R) ([]byte, error)
	Decode(buf []byte) (R, error)
}

// LZ4Codec compresses the output of another Codec with the lz4 frame format. It suits large
// aggregates, such as sets or lists, which are shipped between processes.
type LZ4Codec[R any] struct {
	inner Inner[R]
}

// LZ4 returns an LZ4Codec wrapping inner
func LZ4[R any](inner Inner[R]) LZ4Codec[R] {
	return LZ4Codec[R]{inner: inner}
}

// Encode serializes and compresses an aggregate
func (c LZ4Codec[R]) Encode(v R) ([]byte, error) {
	raw, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	buff := new(bytes.Buffer)
	compressor := lz4.NewWriter(buff)
	if _, err := compressor.Write(raw); err != nil {
		return nil, fmt.Errorf("Unable to compress aggregate: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return nil, fmt.Errorf("Unable to compress aggregate: %w", err)
	}
	return buff.Bytes(), nil
}

// Decode decompresses and deserializes an aggregate
func (c LZ4Codec[R]) Decode(buff []byte) (R, error) {
	raw, err := ioutil.ReadAll(lz4.NewReader(bytes.NewReader(buff)))
	if err != nil {
		var zero R
		return zero, fmt.Errorf("Unable to decompress aggregate: %w", err)
	}
	return c.inner.Decode(raw)
}
