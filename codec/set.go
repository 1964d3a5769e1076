package codec

import (
	"github.com/go-sif/accum/params"
)

// SetCodec serializes a params.Set as a gob-encoded list of its elements
type SetCodec[E comparable] struct {
	elements GobCodec[[]E]
}

// Sets returns a SetCodec over E
func Sets[E comparable]() SetCodec[E] {
	return SetCodec[E]{}
}

// Encode serializes a set
func (c SetCodec[E]) Encode(s params.Set[E]) ([]byte, error) {
	elements := make([]E, 0, len(s))
	for e := range s {
		elements = append(elements, e)
	}
	return c.elements.Encode(elements)
}

// Decode produces a set from serialized data
func (c SetCodec[E]) Decode(buff []byte) (params.Set[E], error) {
	elements, err := c.elements.Decode(buff)
	if err != nil {
		return nil, err
	}
	s := make(params.Set[E], len(elements))
	for _, e := range elements {
		s[e] = struct{}{}
	}
	return s, nil
}
